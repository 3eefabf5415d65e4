// Package pipeline composes the imaging operations into the one-shot
// photo-restore sequence: load, bilateral denoise, unsharp sharpen, write.
//
// The flow is strictly linear. Each stage consumes the previous stage's
// output image and produces a new one, so there is no shared mutable state
// and no stage ever sees a partially processed buffer. Exactly one image is
// processed per Process call; there is no batching, queueing, or retry.
//
// Operating parameters are fixed at construction (New applies the shipped
// defaults) rather than read from flags or configuration, matching the
// program's no-configuration contract. The two console lines a run emits go
// to the Pipeline's Out writer so tests can capture them.
package pipeline
