package mcts

import "math"

// ucbPriority computes the selection priority of a child with current
// mean (Maximizer-perspective average) and cumulative √-weighted
// subsims, among numActions siblings, for a parent to move as p:
//
//	absval = c1·mean + c2·√(log(numActions)/subsims)
//	priority = absval if p is the Maximizer, else -absval
//
// uniform forces pure-exploration selection by zeroing c1, used only
// for the root's forced first descent when Params.Uniform is set.
func ucbPriority(p Player, mean, subsims Value, numActions int, params *Params, uniform bool) Value {
	c1 := Value(params.Exploitation)
	if uniform {
		c1 = 0
	}
	c2 := Value(params.Exploration)
	spread := c2 * Value(math.Sqrt(math.Log(float64(numActions))/float64(subsims)))
	return sign(p, c1*mean+spread)
}

// lcb computes the lower confidence bound used by the root policy to
// make a final, conservative move choice: same spread term as
// ucbPriority, subtracted rather than added.
func lcb(p Player, mean, subsims Value, numActions int, params *Params) Value {
	c1 := Value(params.Exploitation)
	c2 := Value(params.Exploration)
	spread := c2 * Value(math.Sqrt(math.Log(float64(numActions))/float64(subsims)))
	return sign(p, c1*mean-spread)
}
