// Package registry implements directsend.MasternodeRegistry from a
// static, config-supplied masternode list. Masternode election and
// deterministic-rank scoring are the original implementation's own
// concern and are out of scope for this subsystem; this adapter only
// keeps the list in memory and derives a stable ordering from it so the
// engine has something real to rank voters against.
package registry

import (
	"crypto/sha256"
	"encoding/binary"
	"sort"
	"sync"

	"github.com/bitcoin-sv/directsend/internal/directsend"
)

// Entry is one configured masternode.
type Entry struct {
	Voter  directsend.VoterID
	PubKey []byte
}

// Static is an in-memory MasternodeRegistry seeded once at startup.
// AskPeer is a no-op: peer-querying lives in the P2P layer this adapter
// does not have a handle to. Ban only removes the voter from the
// in-memory list.
type Static struct {
	mu      sync.RWMutex
	entries map[directsend.VoterID]Entry
	local   *directsend.VoterID
	synced  bool
}

// New builds a Static registry from entries. If localVoter is non-nil
// and present in entries, IsLocalMasternode reports it.
func New(entries []Entry, localVoter *directsend.VoterID) *Static {
	m := make(map[directsend.VoterID]Entry, len(entries))
	for _, e := range entries {
		m[e.Voter] = e
	}

	var local *directsend.VoterID
	if localVoter != nil {
		if _, ok := m[*localVoter]; ok {
			local = localVoter
		}
	}

	return &Static{entries: m, local: local, synced: len(entries) > 0}
}

func (r *Static) Has(voter directsend.VoterID) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.entries[voter]
	return ok
}

func (r *Static) Info(voter directsend.VoterID) (directsend.MasternodeInfo, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[voter]
	if !ok {
		return directsend.MasternodeInfo{}, false
	}
	return directsend.MasternodeInfo{PubKey: e.PubKey}, true
}

// AskPeer is a no-op: this adapter has no peer-querying channel.
func (r *Static) AskPeer(directsend.PeerRef, directsend.VoterID) {}

// Ban removes voter from the local list. A reload from configuration
// will restore it; there is no persistent ban list here.
func (r *Static) Ban(voter directsend.VoterID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, voter)
}

// Rank orders the known masternode set deterministically by
// sha256(voter-bytes || height) and returns voter's position in that
// order. protocolVersion is accepted for interface compatibility but
// does not currently gate anything in this reference adapter.
func (r *Static) Rank(voter directsend.VoterID, _ directsend.Outpoint, height int32, _ uint32) (int, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if _, ok := r.entries[voter]; !ok {
		return 0, false
	}

	type scored struct {
		voter directsend.VoterID
		score [sha256.Size]byte
	}

	heightBytes := make([]byte, 4)
	binary.LittleEndian.PutUint32(heightBytes, uint32(height))

	scores := make([]scored, 0, len(r.entries))
	for v := range r.entries {
		h := sha256.Sum256(append(v.Bytes(), heightBytes...))
		scores = append(scores, scored{voter: v, score: h})
	}

	sort.Slice(scores, func(i, j int) bool {
		return string(scores[i].score[:]) < string(scores[j].score[:])
	})

	for i, s := range scores {
		if s.voter == voter {
			return i + 1, true
		}
	}

	return 0, false
}

func (r *Static) IsSynced() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.synced
}

func (r *Static) IsLocalMasternode() (directsend.VoterID, bool) {
	if r.local == nil {
		return directsend.VoterID{}, false
	}
	return *r.local, true
}
