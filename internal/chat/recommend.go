package chat

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"sort"

	"github.com/chatverse/chatverse/internal/database"
)

const defaultRecommendLimit = 5

// Recommendation is one ranked candidate: a user the subject is not yet
// friends with, scored by how many distinct interaction kinds the two
// share.
type Recommendation struct {
	Account     database.Account
	SharedKinds int
}

// Recommender accumulates pairwise interaction strength and ranks
// friend candidates from it.
type Recommender struct {
	log *log.Logger
	db  database.ChatRepository
}

func NewRecommender(logger *log.Logger, db database.ChatRepository) *Recommender {
	return &Recommender{log: logger, db: db}
}

// Record bumps the interaction score for the pair by one. The pair is
// canonicalized first, so accumulation is commutative regardless of who
// initiated; the store performs the increment atomically.
func (r *Recommender) Record(a, b database.Account, kind string) error {
	first, second := canonicalPair(a, b)
	if err := r.db.UpsertInteraction(first.Id, second.Id, kind); err != nil {
		return fmt.Errorf("upsert interaction: %w", err)
	}

	return nil
}

// Recommend ranks every user except the subject and their accepted
// friends by (distinct shared interaction kinds desc, profile views
// desc, username asc) and returns at most limit candidates.
func (r *Recommender) Recommend(accountId, limit int) ([]Recommendation, error) {
	if limit <= 0 {
		limit = defaultRecommendLimit
	}

	if _, err := r.db.GetAccountById(accountId); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get account: %w", err)
	}

	accounts, err := r.db.ListAccounts()
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}

	friends, err := r.db.ListFriends(accountId)
	if err != nil {
		return nil, fmt.Errorf("list friends: %w", err)
	}

	excluded := map[int]bool{accountId: true}
	for _, f := range friends {
		excluded[f.Account.Id] = true
	}

	scores, err := r.db.ListInteractions(accountId)
	if err != nil {
		return nil, fmt.Errorf("list interactions: %w", err)
	}

	kindsByPartner := make(map[int]map[string]bool)
	for _, s := range scores {
		partner := s.UserA
		if partner == accountId {
			partner = s.UserB
		}
		if kindsByPartner[partner] == nil {
			kindsByPartner[partner] = make(map[string]bool)
		}
		kindsByPartner[partner][s.Kind] = true
	}

	var candidates []Recommendation
	for _, acct := range accounts {
		if excluded[acct.Id] {
			continue
		}

		candidates = append(candidates, Recommendation{
			Account:     acct,
			SharedKinds: len(kindsByPartner[acct.Id]),
		})
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].SharedKinds != candidates[j].SharedKinds {
			return candidates[i].SharedKinds > candidates[j].SharedKinds
		}
		if candidates[i].Account.ProfileViews != candidates[j].Account.ProfileViews {
			return candidates[i].Account.ProfileViews > candidates[j].Account.ProfileViews
		}
		return candidates[i].Account.Username < candidates[j].Account.Username
	})

	if len(candidates) > limit {
		candidates = candidates[:limit]
	}

	return candidates, nil
}
