package types

import "strings"

// Macro tokens embedded into role args and env values at build time and
// substituted with concrete values by the submission layer. The builder
// never resolves them; it only emits them.
const (
	// MacroAppID is replaced with the app id assigned at submission
	MacroAppID = "${app_id}"

	// MacroImgRoot is replaced with the root directory of the pulled
	// container image on the target host
	MacroImgRoot = "${img_root}"

	// MacroReplicaID is replaced per replica by the scheduler
	MacroReplicaID = "${replica_id}"
)

// MacroValues holds the concrete values to substitute for macro tokens.
// An empty field leaves its token in place for a later resolution stage
// (e.g. the scheduler fills in the replica id, not the submitter).
type MacroValues struct {
	AppID     string
	ImgRoot   string
	ReplicaID string
}

func (v MacroValues) apply(s string) string {
	if v.AppID != "" {
		s = strings.ReplaceAll(s, MacroAppID, v.AppID)
	}
	if v.ImgRoot != "" {
		s = strings.ReplaceAll(s, MacroImgRoot, v.ImgRoot)
	}
	if v.ReplicaID != "" {
		s = strings.ReplaceAll(s, MacroReplicaID, v.ReplicaID)
	}
	return s
}

// SubstituteArgs returns a copy of args with macro tokens replaced
func SubstituteArgs(args []string, v MacroValues) []string {
	out := make([]string, len(args))
	for i, arg := range args {
		out[i] = v.apply(arg)
	}
	return out
}

// SubstituteEnv returns a copy of env with macro tokens replaced in values.
// Keys are left untouched.
func SubstituteEnv(env map[string]string, v MacroValues) map[string]string {
	out := make(map[string]string, len(env))
	for k, val := range env {
		out[k] = v.apply(val)
	}
	return out
}
