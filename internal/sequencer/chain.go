/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package sequencer

import "time"

// animate claims n and runs step(0) .. step(steps-1), the first one right
// away and each following one delay after the previous. done runs one delay
// after the last step.
//
// If n is destroyed while the chain is in flight, the chain stops without
// calling done. If another chain claims n first, this one stops touching n
// but still calls done, so an enclosing sequence carries on.
func (s *Sequencer) animate(n *node, delay time.Duration, steps int, step func(i int), done func()) {
	n.gen++
	gen := n.gen

	var tick func(i int)
	tick = func(i int) {
		if n.destroyed {
			return
		}

		if n.gen != gen || i >= steps {
			if done != nil {
				done()
			}

			return
		}

		step(i)

		s.sched.After(delay, func() {
			tick(i + 1)
		})
	}

	tick(0)
}
