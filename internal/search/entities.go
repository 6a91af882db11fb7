package search

import (
	"context"
	"fmt"
	"strings"

	"github.com/gosimple/slug"
	"gorm.io/gorm"

	"github.com/fspruce/helpful-living/internal/models"
)

// ----------------------------------------------------------------------
// Services
// ----------------------------------------------------------------------

type ServiceSearch struct {
	db *gorm.DB
}

func NewServiceSearch(db *gorm.DB) *ServiceSearch {
	return &ServiceSearch{db: db}
}

func (s *ServiceSearch) Search(ctx context.Context, q string, limit int) ([]Option, error) {
	var services []models.Service
	if err := likeQuery(s.db.WithContext(ctx), []string{"name"}, q).
		Order("name ASC").
		Limit(limit).
		Find(&services).Error; err != nil {
		return nil, err
	}

	opts := make([]Option, 0, len(services))
	for _, sv := range services {
		opts = append(opts, Option{ID: sv.ID, Text: sv.Name})
	}
	return opts, nil
}

// CreateFromText inserts a new service from free text with placeholder
// description and excerpt, unavailable until staff fill it in.
func (s *ServiceSearch) CreateFromText(ctx context.Context, text string) (Option, error) {
	text = strings.TrimSpace(text)

	service := models.Service{
		Name:        text,
		Slug:        slug.Make(text),
		Description: fmt.Sprintf("Service: %s", text),
		Excerpt:     fmt.Sprintf("New service: %s", text),
		Available:   false,
	}

	if err := s.db.WithContext(ctx).Create(&service).Error; err != nil {
		return Option{}, err
	}

	return Option{ID: service.ID, Text: service.Name}, nil
}

var (
	_ Searcher = (*ServiceSearch)(nil)
	_ Creator  = (*ServiceSearch)(nil)
)

// ----------------------------------------------------------------------
// Users
// ----------------------------------------------------------------------

type UserSearch struct {
	db *gorm.DB
}

func NewUserSearch(db *gorm.DB) *UserSearch {
	return &UserSearch{db: db}
}

func (s *UserSearch) Search(ctx context.Context, q string, limit int) ([]Option, error) {
	var users []models.User
	if err := likeQuery(
		s.db.WithContext(ctx),
		[]string{"first_name", "last_name", "email"},
		q,
	).
		Order("last_name ASC").
		Limit(limit).
		Find(&users).Error; err != nil {
		return nil, err
	}

	opts := make([]Option, 0, len(users))
	for _, u := range users {
		opts = append(opts, Option{
			ID:   u.ID,
			Text: fmt.Sprintf("%s %s <%s>", u.FirstName, u.LastName, u.Email),
		})
	}
	return opts, nil
}

var _ Searcher = (*UserSearch)(nil)

// ----------------------------------------------------------------------
// Clients
// ----------------------------------------------------------------------

type ClientSearch struct {
	db *gorm.DB
}

func NewClientSearch(db *gorm.DB) *ClientSearch {
	return &ClientSearch{db: db}
}

func (s *ClientSearch) Search(ctx context.Context, q string, limit int) ([]Option, error) {
	var clients []models.Client
	if err := likeQuery(
		s.db.WithContext(ctx),
		[]string{"first_name", "last_name", "email", "phone_number"},
		q,
	).
		Order("last_name ASC").
		Limit(limit).
		Find(&clients).Error; err != nil {
		return nil, err
	}

	opts := make([]Option, 0, len(clients))
	for _, cl := range clients {
		opts = append(opts, Option{
			ID:   cl.ID,
			Text: fmt.Sprintf("%s, %s (%s)", cl.LastName, cl.FirstName, cl.Email),
		})
	}
	return opts, nil
}

var _ Searcher = (*ClientSearch)(nil)
