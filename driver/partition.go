package driver

// PartitionMap is map<actor, set<actor>>, consulted at dispatch to drop
// cross-partition messages (§3, §4.1).
type PartitionMap map[string]map[string]bool

// NewPartitionMap returns an empty PartitionMap.
func NewPartitionMap() PartitionMap {
	return PartitionMap{}
}

// Add records a bidirectional partition between every member of groupA
// and every member of groupB.
func (p PartitionMap) Add(groupA, groupB []string) {
	for _, a := range groupA {
		for _, b := range groupB {
			p.addDirected(a, b)
			p.addDirected(b, a)
		}
	}
}

func (p PartitionMap) addDirected(from, to string) {
	set, ok := p[from]
	if !ok {
		set = map[string]bool{}
		p[from] = set
	}
	set[to] = true
}

// Unreachable reports whether rcv is unreachable from snd under the
// current partition.
func (p PartitionMap) Unreachable(snd, rcv string) bool {
	return p[snd][rcv]
}
