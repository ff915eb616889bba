/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package sequencer

// Kind names what an element draws.
type Kind string

const (
	KindBanner Kind = "banner"
	KindLogo   Kind = "logo"
	KindStripe Kind = "stripe"
	KindRow    Kind = "row"
	KindMarker Kind = "marker"
	KindScore  Kind = "score"
	KindBigX   Kind = "bigx"
)

// Region is the part of the display an element lives in.
type Region string

const (
	RegionCenter Region = "center"
	RegionLeft   Region = "left"
	RegionRight  Region = "right"
)

// Element is one visual item on the display. Only the fields relevant to
// its Kind are set.
type Element struct {
	ID     string `json:"id"`
	Kind   Kind   `json:"kind"`
	Region Region `json:"region"`
	Index  int    `json:"index"`
	Text   string `json:"text,omitempty"`
	Score  int    `json:"score,omitempty"`
	Lit    bool   `json:"lit,omitempty"`
	Offset int    `json:"offset,omitempty"`
	Width  int    `json:"width,omitempty"`
	Source string `json:"source,omitempty"`
}

type Op string

const (
	OpCreate  Op = "create"
	OpUpdate  Op = "update"
	OpDestroy Op = "destroy"
)

// Update is a single change to the display.
type Update struct {
	Op      Op      `json:"op"`
	Element Element `json:"element"`
}

// Renderer receives every display change in order.
type Renderer interface {
	Render(u Update)
}

type nopRenderer struct{}

func (nopRenderer) Render(Update) {}

// node is the sequencer's handle on a live element. A chain holds on to
// the node it animates and checks it before every step.
type node struct {
	el        Element
	gen       int
	destroyed bool
	revealed  bool
}

type scene struct {
	nodes    map[string]*node
	order    []*node
	renderer Renderer
}

func newScene(r Renderer) *scene {
	if r == nil {
		r = nopRenderer{}
	}

	return &scene{
		nodes:    make(map[string]*node),
		renderer: r,
	}
}

// create adds el, tearing down any element already using its ID.
func (sc *scene) create(el Element) *node {
	if old, ok := sc.nodes[el.ID]; ok {
		sc.destroy(old)
	}

	n := &node{el: el}
	sc.nodes[el.ID] = n
	sc.order = append(sc.order, n)

	sc.renderer.Render(Update{Op: OpCreate, Element: el})

	return n
}

func (sc *scene) get(id string) *node {
	return sc.nodes[id]
}

func (sc *scene) update(n *node, change func(el *Element)) {
	if n == nil || n.destroyed {
		return
	}

	change(&n.el)

	sc.renderer.Render(Update{Op: OpUpdate, Element: n.el})
}

func (sc *scene) destroy(n *node) {
	if n == nil || n.destroyed {
		return
	}

	n.destroyed = true

	if sc.nodes[n.el.ID] == n {
		delete(sc.nodes, n.el.ID)
	}

	for i, o := range sc.order {
		if o == n {
			sc.order = append(sc.order[:i], sc.order[i+1:]...)
			break
		}
	}

	sc.renderer.Render(Update{Op: OpDestroy, Element: n.el})
}

// clear destroys every element in region.
func (sc *scene) clear(region Region) {
	doomed := make([]*node, 0, len(sc.order))
	for _, n := range sc.order {
		if n.el.Region == region {
			doomed = append(doomed, n)
		}
	}

	for _, n := range doomed {
		sc.destroy(n)
	}
}

func (sc *scene) elements() []Element {
	out := make([]Element, len(sc.order))
	for i, n := range sc.order {
		out[i] = n.el
	}

	return out
}
