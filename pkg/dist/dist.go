package dist

import (
	"fmt"
	"path"
	"strconv"
	"strings"

	"github.com/traindeck/traindeck/pkg/types"
)

const (
	// launcherEntrypoint is the command every elastic role runs. The
	// user's real entrypoint becomes the launcher's final positional
	// argument instead.
	launcherEntrypoint = "python"

	// defaultRdzvBackend is used when no rendezvous backend is given
	defaultRdzvBackend = "etcd"
)

// launcherModule invokes the elastic launcher via the interpreter
var launcherModule = []string{"-m", "torch.distributed.launch"}

// ElasticOptions configures the elastic-training flags emitted into the
// launcher argument list. Zero values mean "omit the flag" except for
// RdzvBackend and RdzvID, which always appear: an empty backend falls back
// to etcd and an empty id falls back to the ${app_id} macro so the
// submitter can fill in the real job id at dispatch time.
type ElasticOptions struct {
	// NNodes is the elastic node range, e.g. "2:4". Emitted as
	// "--nnodes <v>" when non-empty.
	NNodes string

	// MaxRestarts is the worker-group restart budget. Emitted as
	// "--max_restarts <v>" when set.
	MaxRestarts *int

	// NoPython emits the bare "--no_python" flag, for entrypoints that
	// are not python scripts.
	NoPython bool

	// RdzvBackend selects the rendezvous backend (default "etcd")
	RdzvBackend string

	// RdzvID identifies the rendezvous group (default ${app_id})
	RdzvID string
}

// NewRole builds a Role whose replicas run the torch elastic launcher.
//
// The generated argument list is deterministic and ordered: launcher
// module first, then the elastic flags in canonical order, then
// "--role <name>", then the resolved script path, then the user's script
// arguments verbatim. The role's replica count defaults to one; use
// Role.Replicas to change it.
func NewRole(
	name string,
	container types.Container,
	entrypoint string,
	scriptArgs []string,
	scriptEnv map[string]string,
	opts ElasticOptions,
) (*types.Role, error) {
	if name == "" {
		return nil, fmt.Errorf("role name is required")
	}
	if entrypoint == "" {
		return nil, fmt.Errorf("role %s: entrypoint is required", name)
	}

	rdzvBackend := opts.RdzvBackend
	if rdzvBackend == "" {
		rdzvBackend = defaultRdzvBackend
	}
	rdzvID := opts.RdzvID
	if rdzvID == "" {
		rdzvID = types.MacroAppID
	}

	args := make([]string, 0, len(launcherModule)+12+len(scriptArgs))
	args = append(args, launcherModule...)
	if opts.NNodes != "" {
		args = append(args, "--nnodes", opts.NNodes)
	}
	if opts.MaxRestarts != nil {
		args = append(args, "--max_restarts", strconv.Itoa(*opts.MaxRestarts))
	}
	if opts.NoPython {
		args = append(args, "--no_python")
	}
	args = append(args, "--rdzv_backend", rdzvBackend)
	args = append(args, "--rdzv_id", rdzvID)
	args = append(args, "--role", name)
	args = append(args, resolveScript(entrypoint))
	args = append(args, scriptArgs...)

	env := make(map[string]string, len(scriptEnv))
	for k, v := range scriptEnv {
		env[k] = v
	}

	return &types.Role{
		Name:        name,
		Entrypoint:  launcherEntrypoint,
		Args:        args,
		Env:         env,
		Container:   container,
		NumReplicas: 1,
	}, nil
}

// resolveScript qualifies the user script path against the image root
// macro. Paths already carrying the macro, and absolute paths, pass
// through unmodified so an already-qualified path is never prefixed twice.
func resolveScript(entrypoint string) string {
	if strings.HasPrefix(entrypoint, types.MacroImgRoot) || path.IsAbs(entrypoint) {
		return entrypoint
	}
	return path.Join(types.MacroImgRoot, entrypoint)
}
