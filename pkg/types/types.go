package types

import (
	"fmt"
	"time"
)

// Resource describes the compute shape requested for one replica
type Resource struct {
	CPU   int // CPU cores
	GPU   int // GPU devices
	MemMB int // Memory in MB
}

// NullResource is the placeholder resource used when the caller does not
// care about the compute shape (e.g. local test runs).
var NullResource = Resource{CPU: -1, GPU: -1, MemMB: -1}

// Container represents the runtime image a role's replicas run in
type Container struct {
	Image     string
	Resources Resource
	Ports     map[string]int // Named ports (e.g. "tensorboard" -> 8080)
}

// NullContainer is the placeholder container used when the target scheduler
// does not require an image (e.g. standalone/local schedulers).
var NullContainer = Container{Image: "<NULL_IMAGE>", Resources: NullResource}

// NewContainer creates a container with the given image and resources
func NewContainer(image string, resources Resource) Container {
	return Container{
		Image:     image,
		Resources: resources,
	}
}

// WithPort returns a copy of the container with the named port added
func (c Container) WithPort(name string, port int) Container {
	ports := make(map[string]int, len(c.Ports)+1)
	for k, v := range c.Ports {
		ports[k] = v
	}
	ports[name] = port
	c.Ports = ports
	return c
}

// Role describes one homogeneous group of worker processes in a job:
// what to run, how to run it, and how many identical replicas to run.
// Roles are value objects consumed by the submission layer; they carry
// no runtime state.
type Role struct {
	Name        string
	Entrypoint  string
	Args        []string
	Env         map[string]string
	Container   Container
	NumReplicas int
}

// Replicas sets the replica count and returns the same role so calls can
// be chained onto a builder. Validation happens at the submission
// boundary, not here.
func (r *Role) Replicas(n int) *Role {
	r.NumReplicas = n
	return r
}

// Validate checks that the role is submittable
func (r *Role) Validate() error {
	if r.Name == "" {
		return fmt.Errorf("role name is required")
	}
	if r.Entrypoint == "" {
		return fmt.Errorf("role %s: entrypoint is required", r.Name)
	}
	if r.NumReplicas < 1 {
		return fmt.Errorf("role %s: replica count must be positive, got %d", r.Name, r.NumReplicas)
	}
	return nil
}

// AppDef is a complete job definition: one or more roles submitted together
type AppDef struct {
	Name  string
	Roles []Role
}

// Validate checks that the app and all of its roles are submittable
func (a *AppDef) Validate() error {
	if a.Name == "" {
		return fmt.Errorf("app name is required")
	}
	if len(a.Roles) == 0 {
		return fmt.Errorf("app %s: at least one role is required", a.Name)
	}
	for i := range a.Roles {
		if err := a.Roles[i].Validate(); err != nil {
			return fmt.Errorf("app %s: %w", a.Name, err)
		}
	}
	return nil
}

// AppStatus represents the lifecycle state of a submitted app
type AppStatus string

const (
	AppStatusSubmitted AppStatus = "submitted"
	AppStatusRunning   AppStatus = "running"
	AppStatusSucceeded AppStatus = "succeeded"
	AppStatusFailed    AppStatus = "failed"
	AppStatusUnknown   AppStatus = "unknown"
)

// AppRecord is the persisted record of one submission. The embedded app
// is the resolved form: macros substituted, ready for the scheduler.
type AppRecord struct {
	ID          string
	Name        string
	Status      AppStatus
	App         AppDef
	SubmittedAt time.Time
}
