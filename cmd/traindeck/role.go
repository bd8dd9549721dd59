package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/traindeck/traindeck/pkg/dist"
	"github.com/traindeck/traindeck/pkg/types"
	"gopkg.in/yaml.v3"
)

var roleCmd = &cobra.Command{
	Use:   "role",
	Short: "Build role specs",
}

var roleBuildCmd = &cobra.Command{
	Use:   "build NAME",
	Short: "Build an elastic training role and print it",
	Long: `Build a role whose replicas run the torch elastic launcher.

Examples:
  # Two to four nodes, three restarts, a python script inside the image
  traindeck role build trainer \
    --image pytorch/pytorch:2.1 --entrypoint train.py \
    --nnodes 2:4 --max-restarts 3 --replicas 2

  # Non-python entrypoint with its own arguments
  traindeck role build trainer \
    --image alpine:3.20 --entrypoint /bin/echo --no-python \
    --script-arg hello --script-arg world`,
	Args: cobra.ExactArgs(1),
	RunE: runRoleBuild,
}

func init() {
	roleBuildCmd.Flags().String("image", "", "Container image (required)")
	roleBuildCmd.Flags().String("entrypoint", "", "Training script or binary (required)")
	roleBuildCmd.Flags().StringArray("script-arg", nil, "Argument passed to the entrypoint (repeatable)")
	roleBuildCmd.Flags().StringToString("env", nil, "Environment variable (KEY=VALUE, repeatable)")
	roleBuildCmd.Flags().Int("replicas", 1, "Number of identical replicas")
	roleBuildCmd.Flags().String("nnodes", "", "Elastic node range, e.g. 2:4")
	roleBuildCmd.Flags().Int("max-restarts", 0, "Worker group restart budget")
	roleBuildCmd.Flags().Bool("no-python", false, "Run the entrypoint directly, without the python shim")
	roleBuildCmd.Flags().String("rdzv-backend", "", "Rendezvous backend (default etcd)")
	roleBuildCmd.Flags().String("rdzv-id", "", "Rendezvous id (default: app id assigned at submission)")
	roleBuildCmd.Flags().Int("cpu", 0, "CPU cores per replica")
	roleBuildCmd.Flags().Int("gpu", 0, "GPU devices per replica")
	roleBuildCmd.Flags().Int("mem-mb", 0, "Memory per replica in MB")
	roleBuildCmd.Flags().StringToString("port", nil, "Named port (NAME=PORT, repeatable)")
	_ = roleBuildCmd.MarkFlagRequired("image")
	_ = roleBuildCmd.MarkFlagRequired("entrypoint")

	roleCmd.AddCommand(roleBuildCmd)
	rootCmd.AddCommand(roleCmd)
}

func runRoleBuild(cmd *cobra.Command, args []string) error {
	name := args[0]
	image, _ := cmd.Flags().GetString("image")
	entrypoint, _ := cmd.Flags().GetString("entrypoint")
	scriptArgs, _ := cmd.Flags().GetStringArray("script-arg")
	env, _ := cmd.Flags().GetStringToString("env")
	replicas, _ := cmd.Flags().GetInt("replicas")
	cpu, _ := cmd.Flags().GetInt("cpu")
	gpu, _ := cmd.Flags().GetInt("gpu")
	memMB, _ := cmd.Flags().GetInt("mem-mb")
	ports, _ := cmd.Flags().GetStringToString("port")

	container := types.NewContainer(image, types.Resource{CPU: cpu, GPU: gpu, MemMB: memMB})
	for portName, portStr := range ports {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return fmt.Errorf("invalid port %s=%s: %v", portName, portStr, err)
		}
		container = container.WithPort(portName, port)
	}

	opts := dist.ElasticOptions{}
	opts.NNodes, _ = cmd.Flags().GetString("nnodes")
	opts.NoPython, _ = cmd.Flags().GetBool("no-python")
	opts.RdzvBackend, _ = cmd.Flags().GetString("rdzv-backend")
	opts.RdzvID, _ = cmd.Flags().GetString("rdzv-id")
	if cmd.Flags().Changed("max-restarts") {
		maxRestarts, _ := cmd.Flags().GetInt("max-restarts")
		opts.MaxRestarts = &maxRestarts
	}

	role, err := dist.NewRole(name, container, entrypoint, scriptArgs, env, opts)
	if err != nil {
		return fmt.Errorf("failed to build role: %w", err)
	}
	role.Replicas(replicas)
	if err := role.Validate(); err != nil {
		return err
	}

	// Print the key/value form the submission API consumes
	out, err := yaml.Marshal(role.Encode())
	if err != nil {
		return fmt.Errorf("failed to render role: %v", err)
	}
	_, err = os.Stdout.Write(out)
	return err
}
