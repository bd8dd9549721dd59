package types

import "fmt"

// Encode/Decode convert between the typed structs and the plain key/value
// form sent to the job submission API. The conversion is written out field
// by field on purpose: the round-trip guarantee (Decode(Encode(r)) == r)
// should not depend on reflection or struct tags.

// Encode converts the resource to its key/value form
func (r Resource) Encode() map[string]any {
	return map[string]any{
		"cpu":   r.CPU,
		"gpu":   r.GPU,
		"memMB": r.MemMB,
	}
}

// DecodeResource reconstructs a Resource from its key/value form
func DecodeResource(m map[string]any) (Resource, error) {
	cpu, err := intField(m, "cpu")
	if err != nil {
		return Resource{}, err
	}
	gpu, err := intField(m, "gpu")
	if err != nil {
		return Resource{}, err
	}
	mem, err := intField(m, "memMB")
	if err != nil {
		return Resource{}, err
	}
	return Resource{CPU: cpu, GPU: gpu, MemMB: mem}, nil
}

// Encode converts the container to its key/value form
func (c Container) Encode() map[string]any {
	ports := make(map[string]any, len(c.Ports))
	for name, port := range c.Ports {
		ports[name] = port
	}
	return map[string]any{
		"image":     c.Image,
		"resources": c.Resources.Encode(),
		"ports":     ports,
	}
}

// DecodeContainer reconstructs a Container from its key/value form
func DecodeContainer(m map[string]any) (Container, error) {
	image, err := stringField(m, "image")
	if err != nil {
		return Container{}, err
	}
	resMap, err := mapField(m, "resources")
	if err != nil {
		return Container{}, err
	}
	resources, err := DecodeResource(resMap)
	if err != nil {
		return Container{}, fmt.Errorf("resources: %w", err)
	}
	portsMap, err := mapField(m, "ports")
	if err != nil {
		return Container{}, err
	}
	var ports map[string]int
	if len(portsMap) > 0 {
		ports = make(map[string]int, len(portsMap))
		for name, v := range portsMap {
			port, ok := asInt(v)
			if !ok {
				return Container{}, fmt.Errorf("port %s: expected integer, got %T", name, v)
			}
			ports[name] = port
		}
	}
	return Container{Image: image, Resources: resources, Ports: ports}, nil
}

// Encode converts the role to its key/value form
func (r *Role) Encode() map[string]any {
	args := make([]any, len(r.Args))
	for i, a := range r.Args {
		args[i] = a
	}
	env := make(map[string]any, len(r.Env))
	for k, v := range r.Env {
		env[k] = v
	}
	return map[string]any{
		"name":         r.Name,
		"entrypoint":   r.Entrypoint,
		"args":         args,
		"env":          env,
		"container":    r.Container.Encode(),
		"num_replicas": r.NumReplicas,
	}
}

// DecodeRole reconstructs a Role from its key/value form
func DecodeRole(m map[string]any) (*Role, error) {
	name, err := stringField(m, "name")
	if err != nil {
		return nil, err
	}
	entrypoint, err := stringField(m, "entrypoint")
	if err != nil {
		return nil, err
	}
	rawArgs, ok := m["args"]
	if !ok {
		return nil, fmt.Errorf("missing field: args")
	}
	args, err := asStringSlice(rawArgs)
	if err != nil {
		return nil, fmt.Errorf("args: %w", err)
	}
	rawEnv, err := mapField(m, "env")
	if err != nil {
		return nil, err
	}
	env := make(map[string]string, len(rawEnv))
	for k, v := range rawEnv {
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("env %s: expected string, got %T", k, v)
		}
		env[k] = s
	}
	containerMap, err := mapField(m, "container")
	if err != nil {
		return nil, err
	}
	container, err := DecodeContainer(containerMap)
	if err != nil {
		return nil, fmt.Errorf("container: %w", err)
	}
	replicas, err := intField(m, "num_replicas")
	if err != nil {
		return nil, err
	}
	return &Role{
		Name:        name,
		Entrypoint:  entrypoint,
		Args:        args,
		Env:         env,
		Container:   container,
		NumReplicas: replicas,
	}, nil
}

// asInt normalizes the integer representations seen after a trip through
// JSON or YAML (json decodes numbers as float64)
func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	}
	return 0, false
}

func asStringSlice(v any) ([]string, error) {
	switch s := v.(type) {
	case []string:
		out := make([]string, len(s))
		copy(out, s)
		return out, nil
	case []any:
		out := make([]string, len(s))
		for i, e := range s {
			str, ok := e.(string)
			if !ok {
				return nil, fmt.Errorf("element %d: expected string, got %T", i, e)
			}
			out[i] = str
		}
		return out, nil
	}
	return nil, fmt.Errorf("expected string list, got %T", v)
}

func stringField(m map[string]any, key string) (string, error) {
	v, ok := m[key]
	if !ok {
		return "", fmt.Errorf("missing field: %s", key)
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("field %s: expected string, got %T", key, v)
	}
	return s, nil
}

func intField(m map[string]any, key string) (int, error) {
	v, ok := m[key]
	if !ok {
		return 0, fmt.Errorf("missing field: %s", key)
	}
	n, ok := asInt(v)
	if !ok {
		return 0, fmt.Errorf("field %s: expected integer, got %T", key, v)
	}
	return n, nil
}

func mapField(m map[string]any, key string) (map[string]any, error) {
	v, ok := m[key]
	if !ok {
		return nil, fmt.Errorf("missing field: %s", key)
	}
	sub, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("field %s: expected mapping, got %T", key, v)
	}
	return sub, nil
}
