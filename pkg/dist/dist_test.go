package dist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/traindeck/traindeck/pkg/types"
)

func intPtr(v int) *int { return &v }

// TestNewRoleFullOptions builds a role with every option set and checks the
// complete generated argument list:
//
//	python -m torch.distributed.launch
//	       --nnodes 2:4
//	       --max_restarts 3
//	       --no_python
//	       --rdzv_backend etcd
//	       --rdzv_id ${app_id}
//	       --role elastic_trainer
//	       /bin/echo hello world
func TestNewRoleFullOptions(t *testing.T) {
	container := types.NewContainer("test_image", types.NullResource).WithPort("foo", 8080)

	role, err := NewRole(
		"elastic_trainer",
		container,
		"/bin/echo",
		[]string{"hello", "world"},
		map[string]string{"ENV_VAR_1": "FOOBAR"},
		ElasticOptions{
			NNodes:      "2:4",
			MaxRestarts: intPtr(3),
			NoPython:    true,
		},
	)
	require.NoError(t, err)
	role.Replicas(2)

	assert.Equal(t, "elastic_trainer", role.Name)
	assert.Equal(t, "python", role.Entrypoint)
	assert.Equal(t, []string{
		"-m",
		"torch.distributed.launch",
		"--nnodes",
		"2:4",
		"--max_restarts",
		"3",
		"--no_python",
		"--rdzv_backend",
		"etcd",
		"--rdzv_id",
		types.MacroAppID,
		"--role",
		"elastic_trainer",
		"/bin/echo",
		"hello",
		"world",
	}, role.Args)
	assert.Equal(t, map[string]string{"ENV_VAR_1": "FOOBAR"}, role.Env)
	assert.Equal(t, container, role.Container)
	assert.Equal(t, 2, role.NumReplicas)
}

func TestNewRoleRdzvOverrides(t *testing.T) {
	role, err := NewRole(
		"test_role",
		types.NullContainer,
		"user_script.py",
		[]string{"--script_arg", "foo"},
		nil,
		ElasticOptions{
			NNodes:      "2:4",
			RdzvBackend: "etcd",
			RdzvID:      "foobar",
		},
	)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"-m",
		"torch.distributed.launch",
		"--nnodes",
		"2:4",
		"--rdzv_backend",
		"etcd",
		"--rdzv_id",
		"foobar",
		"--role",
		"test_role",
		types.MacroImgRoot + "/user_script.py",
		"--script_arg",
		"foo",
	}, role.Args)
}

// TestNewRoleOptionalFlags checks that nnodes/max_restarts/no_python are
// emitted only when their option is set
func TestNewRoleOptionalFlags(t *testing.T) {
	role, err := NewRole("test_role", types.NullContainer, "user_script.py", nil, nil, ElasticOptions{
		NoPython: false,
	})
	require.NoError(t, err)

	assert.Equal(t, []string{
		"-m",
		"torch.distributed.launch",
		"--rdzv_backend",
		"etcd",
		"--rdzv_id",
		types.MacroAppID,
		"--role",
		"test_role",
		types.MacroImgRoot + "/user_script.py",
	}, role.Args)
	assert.Equal(t, 1, role.NumReplicas)
}

func TestNewRoleImgRootAlreadyInEntrypoint(t *testing.T) {
	prefixed := types.MacroImgRoot + "/user_script.py"

	role, err := NewRole("test_role", types.NullContainer, prefixed, nil, nil, ElasticOptions{})
	require.NoError(t, err)

	assert.Equal(t, []string{
		"-m",
		"torch.distributed.launch",
		"--rdzv_backend",
		"etcd",
		"--rdzv_id",
		types.MacroAppID,
		"--role",
		"test_role",
		prefixed,
	}, role.Args)
}

func TestResolveScript(t *testing.T) {
	tests := []struct {
		name       string
		entrypoint string
		expected   string
	}{
		{
			name:       "relative path joined onto img root",
			entrypoint: "user_script.py",
			expected:   types.MacroImgRoot + "/user_script.py",
		},
		{
			name:       "nested relative path",
			entrypoint: "scripts/train.py",
			expected:   types.MacroImgRoot + "/scripts/train.py",
		},
		{
			name:       "already prefixed path unchanged",
			entrypoint: types.MacroImgRoot + "/user_script.py",
			expected:   types.MacroImgRoot + "/user_script.py",
		},
		{
			name:       "absolute path unchanged",
			entrypoint: "/bin/echo",
			expected:   "/bin/echo",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resolved := resolveScript(tt.entrypoint)
			assert.Equal(t, tt.expected, resolved)

			// Resolution is idempotent: resolving twice equals resolving once
			assert.Equal(t, resolved, resolveScript(resolved))
		})
	}
}

func TestNewRoleDeterministic(t *testing.T) {
	build := func() *types.Role {
		role, err := NewRole("trainer", types.NullContainer, "train.py",
			[]string{"--epochs", "10"}, map[string]string{"SEED": "42"},
			ElasticOptions{NNodes: "1:2", MaxRestarts: intPtr(5)})
		require.NoError(t, err)
		return role
	}

	a := build()
	b := build()
	assert.Equal(t, a, b)

	// Fresh allocations: mutating one result must not leak into another
	a.Args[0] = "mutated"
	assert.Equal(t, "-m", b.Args[0])
}

func TestNewRoleInvalidInputs(t *testing.T) {
	_, err := NewRole("", types.NullContainer, "train.py", nil, nil, ElasticOptions{})
	assert.Error(t, err)

	_, err = NewRole("trainer", types.NullContainer, "", nil, nil, ElasticOptions{})
	assert.Error(t, err)
}

func TestNewRoleUserArgsVerbatim(t *testing.T) {
	userArgs := []string{"--lr", "0.01", "--no_python", "${app_id}", "train data"}

	role, err := NewRole("trainer", types.NullContainer, "train.py", userArgs, nil, ElasticOptions{})
	require.NoError(t, err)

	assert.Equal(t, userArgs, role.Args[len(role.Args)-len(userArgs):])
}
