package pushpull

import (
	"encoding/binary"
	"slices"

	"github.com/cespare/xxhash/v2"
	mapset "github.com/deckarep/golang-set/v2"
)

// NodeInfo describes one node at the time of a snapshot.
type NodeInfo struct {
	ID           uint64
	Kind         string
	Label        string
	State        string
	Version      uint64
	Dependencies []uint64 // in read order
	Dependents   []uint64 // sorted
}

// Snapshot is a read-only view of part of a graph.
type Snapshot struct {
	Nodes       []NodeInfo
	Fingerprint uint64
}

// Find returns the node with the given label.
func (s Snapshot) Find(label string) (NodeInfo, bool) {
	for _, n := range s.Nodes {
		if n.Label == label {
			return n, true
		}
	}
	return NodeInfo{}, false
}

// Snapshot walks every node reachable from roots through dependency and
// dependent edges. The engine does not own its nodes, so the walk has to start
// from handles the caller holds. The fingerprint only covers ids, kinds and
// edges, so two graphs built the same way in fresh engines hash the same.
func (e *Engine) Snapshot(roots ...Node) Snapshot {
	visited := mapset.NewThreadUnsafeSet[*node]()
	var pending []*node
	for _, r := range roots {
		n := r.graphNode()
		if n.e == e && visited.Add(n) {
			pending = append(pending, n)
		}
	}
	for len(pending) > 0 {
		n := pending[len(pending)-1]
		pending = pending[:len(pending)-1]
		for _, l := range n.deps {
			if visited.Add(l.dep) {
				pending = append(pending, l.dep)
			}
		}
		for _, sub := range n.subs.ToSlice() {
			if visited.Add(sub) {
				pending = append(pending, sub)
			}
		}
	}

	nodes := visited.ToSlice()
	slices.SortFunc(nodes, byID)

	snap := Snapshot{Nodes: make([]NodeInfo, 0, len(nodes))}
	digest := xxhash.New()
	buf := make([]byte, 0, 64)
	for _, n := range nodes {
		info := NodeInfo{
			ID:      n.id,
			Kind:    n.kind.String(),
			Label:   n.label,
			State:   n.state.String(),
			Version: n.version,
		}
		buf = binary.LittleEndian.AppendUint64(buf[:0], n.id)
		buf = append(buf, byte(n.kind))
		for _, l := range n.deps {
			info.Dependencies = append(info.Dependencies, l.dep.id)
			buf = binary.LittleEndian.AppendUint64(buf, l.dep.id)
		}
		for _, sub := range n.dependents() {
			info.Dependents = append(info.Dependents, sub.id)
		}
		digest.Write(buf)
		snap.Nodes = append(snap.Nodes, info)
	}
	snap.Fingerprint = digest.Sum64()
	return snap
}
