package submit

import (
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/traindeck/traindeck/pkg/dist"
	"github.com/traindeck/traindeck/pkg/log"
	"github.com/traindeck/traindeck/pkg/storage"
	"github.com/traindeck/traindeck/pkg/types"
)

func TestMain(m *testing.M) {
	log.Init(log.Config{Level: log.ErrorLevel, JSONOutput: true, Output: io.Discard})
	os.Exit(m.Run())
}

func newTestStore(t *testing.T) storage.Store {
	t.Helper()
	store, err := storage.NewBoltStore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func elasticApp(t *testing.T) types.AppDef {
	t.Helper()
	role, err := dist.NewRole(
		"trainer",
		types.NewContainer("pytorch/pytorch:2.1", types.Resource{CPU: 4, GPU: 1, MemMB: 16384}),
		"train.py",
		[]string{"--epochs", "10"},
		map[string]string{"JOB": types.MacroAppID},
		dist.ElasticOptions{NNodes: "2:4"},
	)
	require.NoError(t, err)
	role.Replicas(2)
	return types.AppDef{Name: "mnist", Roles: []types.Role{*role}}
}

func TestSubmitAssignsAppID(t *testing.T) {
	store := newTestStore(t)
	submitter := NewSubmitter(store, Config{})

	rec, err := submitter.Submit(elasticApp(t))
	require.NoError(t, err)

	assert.NotEmpty(t, rec.ID)
	assert.Contains(t, rec.ID, "mnist-")
	assert.Equal(t, types.AppStatusSubmitted, rec.Status)
	assert.False(t, rec.SubmittedAt.IsZero())

	// Distinct submissions get distinct ids
	rec2, err := submitter.Submit(elasticApp(t))
	require.NoError(t, err)
	assert.NotEqual(t, rec.ID, rec2.ID)
}

func TestSubmitSubstitutesMacros(t *testing.T) {
	store := newTestStore(t)
	submitter := NewSubmitter(store, Config{ImgRoot: "/opt/images/trainer"})

	rec, err := submitter.Submit(elasticApp(t))
	require.NoError(t, err)

	role := rec.App.Roles[0]
	assert.NotContains(t, role.Args, types.MacroAppID)
	assert.Contains(t, role.Args, rec.ID)
	assert.Contains(t, role.Args, "/opt/images/trainer/train.py")
	assert.Equal(t, rec.ID, role.Env["JOB"])
}

// TestSubmitLeavesImgRootWithoutValue checks that an unconfigured macro
// stays in place for the next resolution stage
func TestSubmitLeavesImgRootWithoutValue(t *testing.T) {
	store := newTestStore(t)
	submitter := NewSubmitter(store, Config{})

	rec, err := submitter.Submit(elasticApp(t))
	require.NoError(t, err)

	assert.Contains(t, rec.App.Roles[0].Args, types.MacroImgRoot+"/train.py")
}

func TestSubmitDoesNotModifyInput(t *testing.T) {
	store := newTestStore(t)
	submitter := NewSubmitter(store, Config{ImgRoot: "/img"})

	app := elasticApp(t)
	_, err := submitter.Submit(app)
	require.NoError(t, err)

	assert.Contains(t, app.Roles[0].Args, "--rdzv_id")
	assert.Contains(t, app.Roles[0].Args, types.MacroAppID)
	assert.Equal(t, types.MacroAppID, app.Roles[0].Env["JOB"])
}

func TestSubmitPersistsRecord(t *testing.T) {
	store := newTestStore(t)
	submitter := NewSubmitter(store, Config{})

	rec, err := submitter.Submit(elasticApp(t))
	require.NoError(t, err)

	got, err := store.GetApp(rec.ID)
	require.NoError(t, err)
	assert.Equal(t, rec, got)
}

func TestSubmitRejectsInvalidApp(t *testing.T) {
	store := newTestStore(t)
	submitter := NewSubmitter(store, Config{})

	_, err := submitter.Submit(types.AppDef{Name: "empty"})
	assert.Error(t, err)

	bad := elasticApp(t)
	bad.Roles[0].NumReplicas = 0
	_, err = submitter.Submit(bad)
	assert.Error(t, err)

	// Nothing recorded for failed submissions
	recs, err := store.ListApps()
	require.NoError(t, err)
	assert.Empty(t, recs)
}
