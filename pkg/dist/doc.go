/*
Package dist builds roles for elastic distributed training.

The single entry point, NewRole, translates a user entrypoint plus elastic
options (node range, restart budget, rendezvous settings) into a Role whose
argument list invokes the torch elastic launcher. The builder is a pure
transformation: same inputs, same argument list, every call. It performs no
I/O and holds no state, so it is safe to call from any number of
goroutines.

Two macro tokens flow through the generated arguments. When the caller
supplies no rendezvous id the builder emits ${app_id} so the submitter can
stamp in the real job id at dispatch time, and relative script paths are
joined onto ${img_root} so the scheduler can point them at the pulled
image. See pkg/types for the tokens and their substitution helpers.
*/
package dist
