package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/traindeck/traindeck/pkg/dist"
	"github.com/traindeck/traindeck/pkg/storage"
	"github.com/traindeck/traindeck/pkg/submit"
	"github.com/traindeck/traindeck/pkg/types"
	"gopkg.in/yaml.v3"
)

var submitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Submit a training job from a manifest",
	Long: `Build and submit a training job described by a YAML manifest.

Examples:
  # Submit a job
  traindeck submit -f job.yaml

  # Submit with a concrete image root for ${img_root}
  traindeck submit -f job.yaml --img-root /opt/images/trainer`,
	RunE: runSubmit,
}

func init() {
	submitCmd.Flags().StringP("file", "f", "", "YAML manifest to submit (required)")
	submitCmd.Flags().String("img-root", "", "Value for the ${img_root} macro (left unresolved if empty)")
	_ = submitCmd.MarkFlagRequired("file")

	rootCmd.AddCommand(submitCmd)
}

// TrainingJobManifest is the YAML form of a job submission
type TrainingJobManifest struct {
	APIVersion string           `yaml:"apiVersion"`
	Kind       string           `yaml:"kind"`
	Metadata   ManifestMetadata `yaml:"metadata"`
	Spec       TrainingJobSpec  `yaml:"spec"`
}

type ManifestMetadata struct {
	Name   string            `yaml:"name"`
	Labels map[string]string `yaml:"labels,omitempty"`
}

type TrainingJobSpec struct {
	Roles []RoleManifest `yaml:"roles"`
}

// RoleManifest describes one role in a manifest
type RoleManifest struct {
	Name        string            `yaml:"name"`
	Image       string            `yaml:"image"`
	Entrypoint  string            `yaml:"entrypoint"`
	Args        []string          `yaml:"args,omitempty"`
	Env         map[string]string `yaml:"env,omitempty"`
	Replicas    int               `yaml:"replicas,omitempty"`
	NNodes      string            `yaml:"nnodes,omitempty"`
	MaxRestarts *int              `yaml:"maxRestarts,omitempty"`
	NoPython    bool              `yaml:"noPython,omitempty"`
	RdzvBackend string            `yaml:"rdzvBackend,omitempty"`
	RdzvID      string            `yaml:"rdzvId,omitempty"`
	Resources   ResourceManifest  `yaml:"resources,omitempty"`
	Ports       map[string]int    `yaml:"ports,omitempty"`
}

type ResourceManifest struct {
	CPU   int `yaml:"cpu,omitempty"`
	GPU   int `yaml:"gpu,omitempty"`
	MemMB int `yaml:"memMB,omitempty"`
}

func runSubmit(cmd *cobra.Command, args []string) error {
	filename, _ := cmd.Flags().GetString("file")
	imgRoot, _ := cmd.Flags().GetString("img-root")
	dataDir, _ := cmd.Flags().GetString("data-dir")

	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read file: %v", err)
	}

	var manifest TrainingJobManifest
	if err := yaml.Unmarshal(data, &manifest); err != nil {
		return fmt.Errorf("failed to parse YAML: %v", err)
	}
	if manifest.Kind != "TrainingJob" {
		return fmt.Errorf("unsupported resource kind: %s", manifest.Kind)
	}

	app, err := buildApp(&manifest)
	if err != nil {
		return err
	}

	store, err := storage.NewBoltStore(dataDir)
	if err != nil {
		return fmt.Errorf("failed to open submission log: %v", err)
	}
	defer store.Close()

	submitter := submit.NewSubmitter(store, submit.Config{ImgRoot: imgRoot})
	rec, err := submitter.Submit(*app)
	if err != nil {
		return fmt.Errorf("failed to submit: %w", err)
	}

	fmt.Printf("✓ Submitted: %s (ID: %s)\n", rec.Name, rec.ID)
	for _, role := range rec.App.Roles {
		fmt.Printf("  Role %s: %d replica(s), image %s\n",
			role.Name, role.NumReplicas, role.Container.Image)
	}
	return nil
}

// buildApp translates a manifest into an app definition via the role builder
func buildApp(manifest *TrainingJobManifest) (*types.AppDef, error) {
	app := &types.AppDef{Name: manifest.Metadata.Name}

	for _, rm := range manifest.Spec.Roles {
		container := types.NewContainer(rm.Image, types.Resource{
			CPU:   rm.Resources.CPU,
			GPU:   rm.Resources.GPU,
			MemMB: rm.Resources.MemMB,
		})
		for name, port := range rm.Ports {
			container = container.WithPort(name, port)
		}

		role, err := dist.NewRole(rm.Name, container, rm.Entrypoint, rm.Args, rm.Env, dist.ElasticOptions{
			NNodes:      rm.NNodes,
			MaxRestarts: rm.MaxRestarts,
			NoPython:    rm.NoPython,
			RdzvBackend: rm.RdzvBackend,
			RdzvID:      rm.RdzvID,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to build role: %w", err)
		}
		if rm.Replicas > 0 {
			role.Replicas(rm.Replicas)
		}
		app.Roles = append(app.Roles, *role)
	}

	return app, nil
}
