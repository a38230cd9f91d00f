package models

import "time"

// Collection names shared by both persistence backends.
const (
	CollectionUsers         = "users"
	CollectionAnnouncements = "announcements"
	CollectionEvents        = "events"
	CollectionFeedbacks     = "feedbacks"
	CollectionPolls         = "polls"
)

// Domain types
//
// JSON field names match the documents the mobile app already stores,
// so both backends read existing data unchanged.

type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Course       string    `json:"course"`
	Year         string    `json:"year"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"passwordHash"`
	ProfilePic   string    `json:"profilePic,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// PublicUser is the client-safe view of a User.
type PublicUser struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Course     string    `json:"course"`
	Year       string    `json:"year"`
	Email      string    `json:"email"`
	ProfilePic string    `json:"profilePic,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

func (u User) Public() PublicUser {
	return PublicUser{
		ID:         u.ID,
		Name:       u.Name,
		Course:     u.Course,
		Year:       u.Year,
		Email:      u.Email,
		ProfilePic: u.ProfilePic,
		CreatedAt:  u.CreatedAt,
	}
}

type Announcement struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Date        string    `json:"date"`
	Description string    `json:"description"`
	OwnerID     string    `json:"ownerId"`
	CreatedAt   time.Time `json:"createdAt"`
}

type Event struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Date        string    `json:"date"`
	Description string    `json:"description"`
	OwnerID     string    `json:"ownerId"`
	CreatedAt   time.Time `json:"createdAt"`
}

type Feedback struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Message   string    `json:"message"`
	OwnerID   string    `json:"ownerId"`
	CreatedAt time.Time `json:"createdAt"`
}

type Option struct {
	ID    string `json:"id"`
	Text  string `json:"text"`
	Image string `json:"image,omitempty"`
	Votes int    `json:"votes"`
}

// Vote records one user's current choice within one poll.
// At most one Vote per user per poll.
type Vote struct {
	UserID   string `json:"userId"`
	OptionID string `json:"optionId"`
}

type Poll struct {
	ID        string    `json:"id"`
	Question  string    `json:"question"`
	Options   []Option  `json:"options"`
	Voters    []Vote    `json:"voters"`
	OwnerID   string    `json:"ownerId"`
	CreatedAt time.Time `json:"createdAt"`
}

// TotalVotes sums the per-option tallies. It equals len(Voters) whenever
// the poll is consistent.
func (p Poll) TotalVotes() int {
	total := 0
	for _, opt := range p.Options {
		total += opt.Votes
	}
	return total
}

// Input types (form field values from the presentation layer)

type AnnouncementInput struct {
	Title       string `json:"title"`
	Date        string `json:"date"`
	Description string `json:"description"`
}

type EventInput struct {
	Title       string `json:"title"`
	Date        string `json:"date"`
	Description string `json:"description"`
}

type FeedbackInput struct {
	Name    string `json:"name"`
	Message string `json:"message"`
}

type OptionInput struct {
	Text  string `json:"text"`
	Image string `json:"image,omitempty"`
}

type PollInput struct {
	Question string        `json:"question"`
	Options  []OptionInput `json:"options"`
}

// Request types

type SignupRequest struct {
	Name            string `json:"name"`
	Course          string `json:"course"`
	Year            string `json:"year"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UpdateProfilePicRequest struct {
	ProfilePic string `json:"profile_pic"`
}

type VoteRequest struct {
	OptionID string `json:"option_id"`
}

// Response types

type MessageResponse struct {
	Message string `json:"message"`
}

type LoginResponse struct {
	Token string     `json:"token"`
	User  PublicUser `json:"user"`
}

type AnnouncementView struct {
	Announcement
	CreatedAgo string `json:"created_ago"`
}

type EventView struct {
	Event
	CreatedAgo string `json:"created_ago"`
}

type FeedbackView struct {
	Feedback
	CreatedAgo string `json:"created_ago"`
}

type PollView struct {
	Poll
	CreatedAgo string `json:"created_ago"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
