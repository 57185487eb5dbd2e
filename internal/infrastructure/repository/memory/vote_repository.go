package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/riskibarqy/soccernow/internal/domain/vote"
)

type VoteRepository struct {
	mu    sync.RWMutex
	votes map[string]vote.Vote
}

func NewVoteRepository(seed []vote.Vote) *VoteRepository {
	votes := make(map[string]vote.Vote, len(seed))
	for _, v := range seed {
		votes[v.ID] = v
	}
	return &VoteRepository{votes: votes}
}

func (r *VoteRepository) List(_ context.Context) ([]vote.Vote, error) {
	return r.filter(func(vote.Vote) bool { return true }), nil
}

func (r *VoteRepository) ListByGame(_ context.Context, gameID string) ([]vote.Vote, error) {
	return r.filter(func(v vote.Vote) bool { return v.GameID == gameID }), nil
}

func (r *VoteRepository) ListByGameAndVoter(_ context.Context, gameID, voterID string) ([]vote.Vote, error) {
	return r.filter(func(v vote.Vote) bool { return v.GameID == gameID && v.VoterID == voterID }), nil
}

func (r *VoteRepository) Upsert(_ context.Context, v vote.Vote) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.votes[v.ID] = v
	return nil
}

func (r *VoteRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.votes, id)
	return nil
}

func (r *VoteRepository) Replace(_ context.Context, removed []string, added []vote.Vote) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, id := range removed {
		delete(r.votes, id)
	}
	for _, v := range added {
		r.votes[v.ID] = v
	}
	return nil
}

// filter returns matches ordered by id so reads are deterministic.
func (r *VoteRepository) filter(keep func(vote.Vote) bool) []vote.Vote {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]vote.Vote, 0, len(r.votes))
	for _, v := range r.votes {
		if keep(v) {
			out = append(out, v)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
