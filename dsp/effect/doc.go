// Package effect defines the seam between the routing graph and the
// concrete effect DSP.
//
// The graph executor never knows what an effect does. It hands each node's
// merged buffer to an Applier together with the node's kind, routing key and
// id, and the Applier processes the buffer in place and may record a level
// for the node. Rack is the default Applier: a registry of runtime factories
// (one runtime per graph node) whose runtime table is swapped atomically so
// that Apply never allocates or locks.
package effect
