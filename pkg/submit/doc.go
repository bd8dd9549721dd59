/*
Package submit is the dispatch boundary between built app definitions and
the external scheduler.

The role builder (pkg/dist) emits macro tokens it cannot resolve: the app
id does not exist until submission, and the image root is only known to
the environment the job lands in. Submitter closes that gap — it assigns
the app id, substitutes the tokens it has values for, and records the
resolved definition in the local submission log (pkg/storage). Tokens
without a configured value (e.g. ${replica_id}) pass through untouched for
later resolution stages.
*/
package submit
