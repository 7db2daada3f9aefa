package service

import (
	"context"
	"fmt"
	"net/http"

	"github.com/alexanderramin/taskboard/internal/domain"
	"github.com/alexanderramin/taskboard/internal/wire"
)

type teamService struct {
	backend Backend
}

func NewTeamService(backend Backend) TeamService {
	return &teamService{backend: backend}
}

func (s *teamService) Members(ctx context.Context) ([]domain.TeamMember, error) {
	var body raw
	if err := s.backend.Do(ctx, http.MethodGet, "team/members", nil, nil, &body); err != nil {
		return nil, fmt.Errorf("listing team members: %w", err)
	}
	return wire.DecodeMembers(body)
}

func (s *teamService) MemberTasks(ctx context.Context, memberID string) ([]domain.Task, error) {
	if err := requireID("member", memberID); err != nil {
		return nil, err
	}
	var body raw
	path := entityPath("team/members", memberID) + "/tasks"
	if err := s.backend.Do(ctx, http.MethodGet, path, nil, nil, &body); err != nil {
		return nil, fmt.Errorf("listing tasks of member %s: %w", memberID, err)
	}
	return wire.DecodeTasks(body)
}
