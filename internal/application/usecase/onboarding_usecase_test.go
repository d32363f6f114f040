package usecase_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spatrax/spatrax-api/internal/application/dto"
	"github.com/spatrax/spatrax-api/internal/domain/entity"
)

func TestOnboarding_SignUpDirectoCreaUsuarioYEnviaBienvenida(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user, err := env.onboard.HandleUserCreated(ctx, dto.IdentityEventData{
		ID:             "sub_nuevo",
		FirstName:      "Ana",
		LastName:       "Ruiz",
		EmailAddresses: []dto.IdentityEmail{{EmailAddress: "ana@spa.com"}},
	})
	require.NoError(t, err)
	require.NotZero(t, user.ID)
	assert.Equal(t, "sub_nuevo", user.AuthSubject)
	assert.Empty(t, user.Role, "un sign-up directo no trae rol ni establecimiento")
	assert.Nil(t, user.EstablishmentID)
	assert.Equal(t, []string{"ana@spa.com"}, env.email.welcomes)

	// El usuario queda resoluble por subject.
	got, err := env.users.GetCurrent(ctx, "sub_nuevo")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
}

func TestOnboarding_SignUpConInvitacionEnlazaYAcepta(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	est := env.seedEstablishment(t, entity.Establishment{BusinessName: "Serenity Spa", Address: "123 Main St", City: "Austin", State: "TX", Postal: "78701", Country: "US", Chairs: 4})
	invited := env.seedUser(t, entity.User{FirstName: "Lia", LastName: "Perez", Email: "lia@spa.com", Role: entity.RoleEmployee, EstablishmentID: &est.ID})
	inv := &entity.Invite{UserID: invited.ID, EstablishmentID: est.ID, InviteEmail: "lia@spa.com"}
	require.NoError(t, env.invRepo.Create(ctx, inv))

	user, err := env.onboard.HandleUserCreated(ctx, dto.IdentityEventData{
		ID:             "sub_lia",
		FirstName:      "Lia",
		LastName:       "Perez",
		EmailAddresses: []dto.IdentityEmail{{EmailAddress: "lia@spa.com"}},
		UnsafeMetadata: dto.IdentityMetadata{InviteID: dto.FlexibleID(inv.ID)},
	})
	require.NoError(t, err)
	assert.Equal(t, invited.ID, user.ID, "no se crea un usuario nuevo: se enlaza el pre-creado")
	assert.Equal(t, "sub_lia", user.AuthSubject)

	accepted, err := env.invRepo.GetByID(ctx, inv.ID)
	require.NoError(t, err)
	assert.True(t, accepted.Accepted, "la invitación pasa a accepted")
	assert.Equal(t, []string{"lia@spa.com"}, env.email.welcomes)
}

func TestOnboarding_InvitacionInexistenteFalla(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.onboard.HandleUserCreated(context.Background(), dto.IdentityEventData{
		ID:             "sub_x",
		EmailAddresses: []dto.IdentityEmail{{EmailAddress: "x@spa.com"}},
		UnsafeMetadata: dto.IdentityMetadata{InviteID: 999},
	})
	assert.Error(t, err)
	assert.Empty(t, env.email.welcomes, "sin usuario enlazado no se envía bienvenida")
}

func TestFlexibleID_AceptaNumeroYString(t *testing.T) {
	cases := []struct {
		raw  string
		want int64
	}{
		{`{"inviteId": 7}`, 7},
		{`{"inviteId": "7"}`, 7},
		{`{"inviteId": null}`, 0},
		{`{"inviteId": "abc"}`, 0},
		{`{}`, 0},
	}
	for _, tc := range cases {
		var meta dto.IdentityMetadata
		require.NoError(t, json.Unmarshal([]byte(tc.raw), &meta), tc.raw)
		assert.Equal(t, tc.want, meta.InviteID.Int64(), tc.raw)
	}
}
