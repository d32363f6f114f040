package usecase

import (
	"context"
	"fmt"

	"github.com/spatrax/spatrax-api/internal/application/dto"
	"github.com/spatrax/spatrax-api/internal/domain/entity"
)

// DashboardUseCase arma la vista inicial de la app: establecimiento, equipo y
// logs recientes en una sola respuesta. Delega en los casos de uso de cada
// recurso, así que cada bloque aprovecha su propia caché.
type DashboardUseCase struct {
	establishments *EstablishmentUseCase
	team           *TeamUseCase
	logs           *LogUseCase
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(establishments *EstablishmentUseCase, team *TeamUseCase, logs *LogUseCase) *DashboardUseCase {
	return &DashboardUseCase{establishments: establishments, team: team, logs: logs}
}

// GetSummary construye el DashboardResponse del caller.
//
// Tres llamadas en paralelo:
//  1. Establecimiento del caller
//  2. Equipo del establecimiento
//  3. Logs recientes
//
// El primer error aborta la respuesta completa: un dashboard parcial confunde
// más de lo que ayuda.
func (uc *DashboardUseCase) GetSummary(ctx context.Context, authSubject string) (*dto.DashboardResponse, error) {
	type establishmentResult struct {
		establishment *entity.Establishment
		err           error
	}
	type teamResult struct {
		team []*entity.User
		err  error
	}
	type logsResult struct {
		logs []*entity.LogWithUser
		err  error
	}

	estCh := make(chan establishmentResult, 1)
	teamCh := make(chan teamResult, 1)
	logsCh := make(chan logsResult, 1)

	go func() {
		user, err := uc.establishments.users.GetCurrent(ctx, authSubject)
		if err != nil {
			estCh <- establishmentResult{nil, err}
			return
		}
		est, err := uc.establishments.GetForUser(ctx, user)
		estCh <- establishmentResult{est, err}
	}()
	go func() {
		team, err := uc.team.GetTeam(ctx, authSubject)
		teamCh <- teamResult{team, err}
	}()
	go func() {
		logs, err := uc.logs.GetRecent(ctx, authSubject)
		logsCh <- logsResult{logs, err}
	}()

	est := <-estCh
	team := <-teamCh
	logs := <-logsCh

	if est.err != nil {
		return nil, fmt.Errorf("dashboard: establecimiento: %w", est.err)
	}
	if team.err != nil {
		return nil, fmt.Errorf("dashboard: equipo: %w", team.err)
	}
	if logs.err != nil {
		return nil, fmt.Errorf("dashboard: logs recientes: %w", logs.err)
	}

	teamDTOs := make([]*dto.UserResponse, 0, len(team.team))
	for _, m := range team.team {
		teamDTOs = append(teamDTOs, dto.ToUserResponse(m))
	}
	logDTOs := make([]*dto.LogResponse, 0, len(logs.logs))
	for _, l := range logs.logs {
		logDTOs = append(logDTOs, dto.ToLogResponse(l))
	}

	return &dto.DashboardResponse{
		Establishment: dto.ToEstablishmentResponse(est.establishment),
		Team:          teamDTOs,
		RecentLogs:    logDTOs,
	}, nil
}
