// Package runtime runs the derivation pipeline: casting → primary, changed and
// mutual hexagrams → hint, then journaling and lifecycle hooks.
package runtime
