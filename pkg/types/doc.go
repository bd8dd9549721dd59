/*
Package types defines the core data structures used throughout traindeck.

This package contains the domain model for distributed-training job
specifications: compute shapes, containers, roles, app definitions, and the
persisted submission records. These types are value objects — they describe
what should run, never what is running. All other packages build on them.

# Core Types

Job specification:
  - Resource: CPU/GPU/memory shape requested per replica
  - Container: image plus resources and named ports
  - Role: one homogeneous group of worker processes (entrypoint, args,
    env, container, replica count)
  - AppDef: a complete job, one or more roles submitted together

Submission tracking:
  - AppRecord: persisted record of one submission (resolved app + status)
  - AppStatus: submitted, running, succeeded, failed, unknown

Macros:
  - MacroAppID, MacroImgRoot, MacroReplicaID: placeholder tokens emitted
    into role args/env at build time
  - MacroValues, SubstituteArgs, SubstituteEnv: resolution applied by the
    submission layer, never by the builder

# Key/Value Form

A Role is serializable to a plain key/value structure for transmission to a
job submission API:

	m := role.Encode()
	// {"name": ..., "entrypoint": ..., "args": [...], "env": {...},
	//  "container": {...}, "num_replicas": N}
	back, err := types.DecodeRole(m)

Encode and Decode are written field by field, without reflection, and
guarantee the round-trip law: decoding an encoded role yields a role equal
in every field to the original.

# Usage

Building a container and adjusting a role's replica count:

	container := types.NewContainer("pytorch/pytorch:2.1", types.Resource{
		CPU:   4,
		GPU:   1,
		MemMB: 16384,
	}).WithPort("tensorboard", 8080)

	role.Replicas(4)

# Validation

Roles and apps are validated at the submission boundary, not at
construction: Replicas is a plain fluent setter, and Role.Validate /
AppDef.Validate reject empty names, empty entrypoints, and non-positive
replica counts.

# Thread Safety

All types are plain values with no internal synchronization. Readers may
share them freely; mutations must be synchronized by callers.
*/
package types
