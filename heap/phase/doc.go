// Package phase models the coarse two-phase startup of the game engine:
// a short-lived setup phase whose allocations are discarded wholesale, and
// the main session backed by the persistent region. Transitioning releases
// every setup allocation in O(1) by destroying the setup zone.
package phase
