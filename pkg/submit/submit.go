package submit

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/traindeck/traindeck/pkg/log"
	"github.com/traindeck/traindeck/pkg/storage"
	"github.com/traindeck/traindeck/pkg/types"
)

// Config holds submitter configuration
type Config struct {
	// ImgRoot is the value substituted for the ${img_root} macro.
	// Left empty, the token stays in place for the scheduler to resolve.
	ImgRoot string
}

// Submitter resolves macros in app definitions and records submissions
type Submitter struct {
	store   storage.Store
	imgRoot string
	logger  zerolog.Logger
}

// NewSubmitter creates a new submitter backed by the given store
func NewSubmitter(store storage.Store, cfg Config) *Submitter {
	return &Submitter{
		store:   store,
		imgRoot: cfg.ImgRoot,
		logger:  log.WithComponent("submit"),
	}
}

// Submit validates the app, assigns it an app id, substitutes the
// ${app_id} (and, if configured, ${img_root}) macros in every role, and
// persists the resolved record. The input app is not modified.
func (s *Submitter) Submit(app types.AppDef) (*types.AppRecord, error) {
	if err := app.Validate(); err != nil {
		return nil, err
	}

	appID := fmt.Sprintf("%s-%s", app.Name, uuid.New().String())
	values := types.MacroValues{
		AppID:   appID,
		ImgRoot: s.imgRoot,
	}

	resolved := types.AppDef{
		Name:  app.Name,
		Roles: make([]types.Role, len(app.Roles)),
	}
	for i, role := range app.Roles {
		role.Args = types.SubstituteArgs(role.Args, values)
		role.Env = types.SubstituteEnv(role.Env, values)
		resolved.Roles[i] = role
	}

	rec := &types.AppRecord{
		ID:          appID,
		Name:        app.Name,
		Status:      types.AppStatusSubmitted,
		App:         resolved,
		SubmittedAt: time.Now().UTC(),
	}
	if err := s.store.SaveApp(rec); err != nil {
		return nil, fmt.Errorf("failed to record submission: %w", err)
	}

	s.logger.Info().
		Str("app_id", appID).
		Int("roles", len(resolved.Roles)).
		Msg("app submitted")
	return rec, nil
}
