// Copyright (c) 2025 Voice of CCTC contributors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/Jaymica07/Rebias-Voice-of-CCTC/apperr"
	"github.com/Jaymica07/Rebias-Voice-of-CCTC/models"
	"github.com/Jaymica07/Rebias-Voice-of-CCTC/session"
	"github.com/Jaymica07/Rebias-Voice-of-CCTC/store"
)

// Polls is the repository for polls, including the voting engine.
type Polls struct {
	base
}

func NewPolls(s store.Store) *Polls {
	return &Polls{base{store: s, collection: models.CollectionPolls, label: "poll"}}
}

func (r *Polls) List(ctx context.Context) ([]models.Poll, error) {
	docs, err := r.list(ctx)
	if err != nil {
		return nil, err
	}
	return decodeAll[models.Poll](docs)
}

// Get fetches one poll by id.
func (r *Polls) Get(ctx context.Context, id string) (models.Poll, error) {
	doc, err := r.store.Get(ctx, r.collection, id)
	if errors.Is(err, store.ErrNotFound) {
		return models.Poll{}, apperr.New(apperr.NotFound, "Poll not found.")
	}
	if err != nil {
		return models.Poll{}, fmt.Errorf("failed to fetch poll: %w", err)
	}

	var p models.Poll
	if err := store.Decode(doc, &p); err != nil {
		return models.Poll{}, err
	}
	return p, nil
}

// Save creates a poll (requiring at least two options) or edits an
// existing one. Editing the option list resets tallies and voters so the
// poll stays consistent; editing only the question leaves votes intact.
func (r *Polls) Save(ctx context.Context, sess *session.Session, in models.PollInput, editingID string) (models.Poll, error) {
	if in.Question == "" {
		return models.Poll{}, apperr.New(apperr.Validation, "Please fill all fields.")
	}

	fields := store.Document{"question": in.Question}

	if editingID == "" || len(in.Options) > 0 {
		if len(in.Options) < 2 {
			return models.Poll{}, apperr.New(apperr.Validation, "Poll needs at least 2 options.")
		}

		options := make([]models.Option, 0, len(in.Options))
		for _, opt := range in.Options {
			if opt.Text == "" {
				return models.Poll{}, apperr.New(apperr.Validation, "Every option needs text.")
			}
			options = append(options, models.Option{
				ID:    uuid.NewString(),
				Text:  opt.Text,
				Image: opt.Image,
			})
		}

		optsValue, err := toJSONValue(options)
		if err != nil {
			return models.Poll{}, err
		}
		fields["options"] = optsValue
		fields["voters"] = []any{}
	}

	doc, err := r.save(ctx, sess, fields, editingID)
	if err != nil {
		return models.Poll{}, err
	}

	var out models.Poll
	if err := store.Decode(doc, &out); err != nil {
		return models.Poll{}, err
	}
	return out, nil
}

func (r *Polls) Delete(ctx context.Context, sess *session.Session, id string) error {
	return r.remove(ctx, sess, id)
}

func (r *Polls) Subscribe(ctx context.Context) (<-chan []models.Poll, func(), error) {
	sub, err := r.store.Subscribe(ctx, r.collection)
	if err != nil {
		return nil, nil, err
	}
	ch, cancel := forward[models.Poll](sub)
	return ch, cancel, nil
}

// Vote applies one user's vote to a poll:
//
//   - no prior vote: the chosen option gains a vote and the user joins
//     the voter set
//   - prior vote on the same option: the vote is retracted
//   - prior vote on another option: the vote moves, old tally down, new
//     tally up
//
// The option tallies and the voter set commit as one write, so readers
// never observe a half-applied migration. Across every case each user
// holds at most one vote and sum(option.votes) == len(voters).
func (r *Polls) Vote(ctx context.Context, sess *session.Session, pollID, optionID string) (models.Poll, error) {
	if sess == nil {
		return models.Poll{}, apperr.New(apperr.Auth, "You must be logged in to vote.")
	}

	poll, err := r.Get(ctx, pollID)
	if err != nil {
		return models.Poll{}, err
	}

	chosen := -1
	for i, opt := range poll.Options {
		if opt.ID == optionID {
			chosen = i
			break
		}
	}
	if chosen == -1 {
		return models.Poll{}, apperr.New(apperr.NotFound, "Option not found.")
	}

	prior := -1
	for i, v := range poll.Voters {
		if v.UserID == sess.User.ID {
			prior = i
			break
		}
	}

	switch {
	case prior == -1:
		// First vote.
		poll.Options[chosen].Votes++
		poll.Voters = append(poll.Voters, models.Vote{UserID: sess.User.ID, OptionID: optionID})

	case poll.Voters[prior].OptionID == optionID:
		// Toggle off: retract the vote.
		if poll.Options[chosen].Votes > 0 {
			poll.Options[chosen].Votes--
		}
		poll.Voters = append(poll.Voters[:prior], poll.Voters[prior+1:]...)

	default:
		// Vote change: move the tally from the old option to the new one.
		for i, opt := range poll.Options {
			if opt.ID == poll.Voters[prior].OptionID && opt.Votes > 0 {
				poll.Options[i].Votes--
			}
		}
		poll.Options[chosen].Votes++
		poll.Voters[prior].OptionID = optionID
	}

	optsValue, err := toJSONValue(poll.Options)
	if err != nil {
		return models.Poll{}, err
	}
	votersValue, err := toJSONValue(poll.Voters)
	if err != nil {
		return models.Poll{}, err
	}

	err = r.store.Update(ctx, r.collection, pollID, store.Document{
		"options": optsValue,
		"voters":  votersValue,
	})
	if errors.Is(err, store.ErrNotFound) {
		return models.Poll{}, apperr.New(apperr.NotFound, "Poll not found.")
	}
	if err != nil {
		return models.Poll{}, fmt.Errorf("failed to record vote: %w", err)
	}

	return poll, nil
}

// toJSONValue converts a typed value into the plain maps-and-slices form
// both backends store.
func toJSONValue(v any) (any, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out any
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	return out, nil
}
