package service

import (
	"net/http"

	"splitledger/internal/middleware"
	"splitledger/internal/models"
	"splitledger/internal/storage"
	"splitledger/internal/validation"
	"splitledger/pkg/serrs"
)

// GroupService handles group creation and listing.
type GroupService struct {
	store storage.Store
}

// NewGroupService creates a new GroupService.
func NewGroupService(store storage.Store) *GroupService {
	return &GroupService{store: store}
}

type groupRequest struct {
	Name    string   `json:"name"`
	Members []string `json:"members"`
}

type groupResponse struct {
	ID                  string   `json:"id"`
	Name                string   `json:"name"`
	Members             []string `json:"members"`
	CreatedBy           string   `json:"created_by"`
	CreatedAt           string   `json:"created_at"`
	UnregisteredMembers []string `json:"unregistered_members,omitempty"`
}

// Create registers a new group. The member list must be non-empty and the
// group name is unique per creator; the creator need not appear in the list.
func (s *GroupService) Create(w http.ResponseWriter, r *http.Request) {
	email := middleware.GetEmail(r.Context())

	var req groupRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	group := &models.Group{
		Name:      req.Name,
		Members:   req.Members,
		CreatedBy: email,
	}
	if err := validation.Group(group); err != nil {
		writeError(w, err)
		return
	}

	existing, err := s.store.GetGroupByNameAndCreator(r.Context(), group.Name, email)
	if err != nil {
		writeError(w, serrs.Wrap(serrs.ErrStore, err, "failed to check group name"))
		return
	}
	if existing != nil {
		writeError(w, serrs.With(serrs.ErrValidation, "group with this name already exists"))
		return
	}

	unregistered, err := detectUnregistered(r.Context(), s.store, group.Members...)
	if err != nil {
		writeError(w, err)
		return
	}
	group.UnregisteredMembers = unregistered

	if err := s.store.CreateGroup(r.Context(), group); err != nil {
		writeError(w, serrs.Wrap(serrs.ErrStore, err, "failed to create group"))
		return
	}

	writeJSON(w, http.StatusOK, toGroupResponse(group))
}

// List returns every group the caller created or belongs to.
func (s *GroupService) List(w http.ResponseWriter, r *http.Request) {
	email := middleware.GetEmail(r.Context())

	groups, err := s.store.ListGroupsForUser(r.Context(), email)
	if err != nil {
		writeError(w, serrs.Wrap(serrs.ErrStore, err, "failed to list groups"))
		return
	}

	resp := make([]groupResponse, 0, len(groups))
	for _, g := range groups {
		resp = append(resp, toGroupResponse(g))
	}
	writeJSON(w, http.StatusOK, resp)
}

func toGroupResponse(g *models.Group) groupResponse {
	return groupResponse{
		ID:                  g.ID,
		Name:                g.Name,
		Members:             g.Members,
		CreatedBy:           g.CreatedBy,
		CreatedAt:           g.CreatedAt,
		UnregisteredMembers: g.UnregisteredMembers,
	}
}
