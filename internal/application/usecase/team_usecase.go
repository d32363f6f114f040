package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/spatrax/spatrax-api/internal/application/dto"
	"github.com/spatrax/spatrax-api/internal/domain"
	"github.com/spatrax/spatrax-api/internal/domain/entity"
	"github.com/spatrax/spatrax-api/internal/domain/repository"
	"github.com/spatrax/spatrax-api/internal/infrastructure/cache"
)

// TeamUseCase gestión del equipo de un establecimiento: listado cache-aside
// sobre team:<establishmentID>, alta por manager/admin y ediciones con parcheo
// de la lista cacheada por reemplazo por id.
type TeamUseCase struct {
	users    *UserUseCase
	userRepo repository.UserRepository
	cache    *cache.Service
}

// NewTeamUseCase construye el caso de uso con sus colaboradores.
func NewTeamUseCase(users *UserUseCase, userRepo repository.UserRepository, cache *cache.Service) *TeamUseCase {
	return &TeamUseCase{users: users, userRepo: userRepo, cache: cache}
}

// GetTeam devuelve los usuarios del establecimiento del caller.
// Un usuario sin establecimiento recibe lista vacía, no error.
func (uc *TeamUseCase) GetTeam(ctx context.Context, authSubject string) ([]*entity.User, error) {
	user, err := uc.users.GetCurrent(ctx, authSubject)
	if err != nil {
		return nil, err
	}
	if user.EstablishmentID == nil {
		return []*entity.User{}, nil
	}
	estID := *user.EstablishmentID
	return cache.GetOrLoad(ctx, uc.cache, cache.TeamKey(estID),
		func(ctx context.Context) ([]*entity.User, error) {
			return uc.userRepo.ListByEstablishment(ctx, estID)
		})
}

// GetMember devuelve un miembro del equipo por id. Primero lo busca dentro de
// la lista cacheada; en fallback consulta el store y verifica que el miembro
// pertenezca al mismo establecimiento. Ambos caminos devuelven un único registro.
func (uc *TeamUseCase) GetMember(ctx context.Context, authSubject string, id int64) (*entity.User, error) {
	user, err := uc.users.GetCurrent(ctx, authSubject)
	if err != nil {
		return nil, err
	}
	if user.EstablishmentID == nil {
		return nil, domain.ErrNoEstablishment
	}

	var team []*entity.User
	if uc.cache.Get(ctx, cache.TeamKey(*user.EstablishmentID), &team) {
		for _, m := range team {
			if m.ID == id {
				return m, nil
			}
		}
	}

	member, err := uc.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if member == nil || member.EstablishmentID == nil || *member.EstablishmentID != *user.EstablishmentID {
		return nil, domain.ErrNotFound
	}
	return member, nil
}

// CreateMember da de alta un miembro del equipo. Requiere caller manager/admin
// con establecimiento; el tenant se hereda del caller. Email duplicado se
// rechaza. La lista team:<id> solo se parchea si ya estaba cacheada: una caché
// fría se deja fría y la repuebla la próxima lectura.
func (uc *TeamUseCase) CreateMember(ctx context.Context, authSubject string, in dto.CreateTeamMemberRequest) (*entity.User, error) {
	user, err := uc.users.GetCurrent(ctx, authSubject)
	if err != nil {
		return nil, err
	}
	if user.EstablishmentID == nil || !user.IsElevated() {
		return nil, domain.ErrForbidden
	}

	if err := validateMemberFields(in.FirstName, in.LastName, in.Email); err != nil {
		return nil, err
	}
	if in.Role != entity.RoleEmployee && in.Role != entity.RoleManager {
		return nil, domain.Validation("role debe ser employee o manager")
	}

	existing, err := uc.userRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}

	estID := *user.EstablishmentID
	member := &entity.User{
		FirstName:       strings.TrimSpace(in.FirstName),
		LastName:        strings.TrimSpace(in.LastName),
		Email:           in.Email,
		Role:            in.Role,
		DefaultChair:    in.Chair,
		EstablishmentID: &estID,
	}
	if err := uc.userRepo.Create(ctx, member); err != nil {
		return nil, err
	}

	uc.cache.Set(ctx, cache.UserIDKey(member.ID), member)
	var team []*entity.User
	if uc.cache.Get(ctx, cache.TeamKey(estID), &team) {
		team = append(team, member)
		uc.cache.Set(ctx, cache.TeamKey(estID), team)
	}

	return member, nil
}

// EditMember actualiza datos generales de un miembro (solo manager/admin del
// mismo establecimiento).
func (uc *TeamUseCase) EditMember(ctx context.Context, authSubject string, id int64, in dto.EditTeamMemberRequest) (*entity.User, error) {
	caller, err := uc.users.GetCurrent(ctx, authSubject)
	if err != nil {
		return nil, err
	}
	if !caller.IsElevated() {
		return nil, domain.ErrForbidden
	}

	member, err := uc.memberOfSameEstablishment(ctx, caller, id)
	if err != nil {
		return nil, err
	}

	if err := validateMemberFields(in.FirstName, in.LastName, in.Email); err != nil {
		return nil, err
	}
	if in.Role != entity.RoleEmployee && in.Role != entity.RoleManager && in.Role != entity.RoleAdmin {
		return nil, domain.Validation("role debe ser employee, manager o admin")
	}

	member.FirstName = strings.TrimSpace(in.FirstName)
	member.LastName = strings.TrimSpace(in.LastName)
	member.Email = in.Email
	member.Role = in.Role
	member.DefaultChair = in.Chair
	if in.ESignature != "" {
		member.ESignature = in.ESignature
	}
	if err := uc.userRepo.Update(ctx, member); err != nil {
		return nil, err
	}

	uc.patchMemberCaches(ctx, member)
	return member, nil
}

// EditSignature registra o cambia la firma de un miembro. Permitido al propio
// usuario o a un manager/admin.
func (uc *TeamUseCase) EditSignature(ctx context.Context, authSubject string, id int64, esignature string) (*entity.User, error) {
	caller, err := uc.users.GetCurrent(ctx, authSubject)
	if err != nil {
		return nil, err
	}
	if caller.ID != id && !caller.IsElevated() {
		return nil, domain.ErrForbidden
	}
	if esignature == "" {
		return nil, domain.Validation("esignature es requerida")
	}

	var member *entity.User
	if caller.ID == id {
		member = caller
	} else {
		member, err = uc.memberOfSameEstablishment(ctx, caller, id)
		if err != nil {
			return nil, err
		}
	}

	member.ESignature = esignature
	if err := uc.userRepo.Update(ctx, member); err != nil {
		return nil, err
	}

	uc.patchMemberCaches(ctx, member)
	return member, nil
}

// memberOfSameEstablishment carga un miembro y verifica que comparta tenant
// con el caller. Un miembro de otro establecimiento se reporta como NotFound
// para no filtrar su existencia.
func (uc *TeamUseCase) memberOfSameEstablishment(ctx context.Context, caller *entity.User, id int64) (*entity.User, error) {
	if caller.EstablishmentID == nil {
		return nil, domain.ErrNoEstablishment
	}
	member, err := uc.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if member == nil || member.EstablishmentID == nil || *member.EstablishmentID != *caller.EstablishmentID {
		return nil, domain.ErrNotFound
	}
	return member, nil
}

// patchMemberCaches actualiza las entradas derivadas tras una mutación de
// usuario: users:<id> siempre, users:<authSubject> solo si la fila tiene
// subject (miembros invitados aún sin sign-up no lo tienen), y reemplazo por
// id dentro de la lista team:<establishmentID> si estaba cacheada.
func (uc *TeamUseCase) patchMemberCaches(ctx context.Context, member *entity.User) {
	uc.cache.Set(ctx, cache.UserIDKey(member.ID), member)
	if member.AuthSubject != "" {
		uc.cache.Set(ctx, cache.UserKey(member.AuthSubject), member)
	}
	if member.EstablishmentID == nil {
		return
	}
	key := cache.TeamKey(*member.EstablishmentID)
	var team []*entity.User
	if !uc.cache.Get(ctx, key, &team) {
		return
	}
	for i, m := range team {
		if m.ID == member.ID {
			team[i] = member
			uc.cache.Set(ctx, key, team)
			return
		}
	}
}

// validateMemberFields valida nombre, apellido y email de un miembro
// (largos entre 2 y 255 tras recorte).
func validateMemberFields(firstName, lastName, email string) error {
	fields := []struct {
		label string
		value string
	}{
		{"first_name", strings.TrimSpace(firstName)},
		{"last_name", strings.TrimSpace(lastName)},
		{"email", strings.TrimSpace(email)},
	}
	for _, f := range fields {
		if len(f.value) < 2 {
			return domain.Validation(fmt.Sprintf("%s debe tener al menos 2 caracteres", f.label))
		}
		if len(f.value) > 255 {
			return domain.Validation(fmt.Sprintf("%s debe tener menos de 256 caracteres", f.label))
		}
	}
	return nil
}
