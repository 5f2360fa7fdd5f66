package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MealHub/internal/api/dto"
	"MealHub/internal/model"
)

func TestCreateFamilySeedsAdminMember(t *testing.T) {
	familyRepo := newFakeFamilyRepo()
	svc := NewFamilyService(familyRepo)

	family, err := svc.CreateFamily(context.Background(), 7, &dto.CreateFamilyDTO{
		Name:                "Nguyen Household",
		DietaryRestrictions: []string{"vegetarian"},
	})
	require.NoError(t, err)

	assert.Equal(t, uint64(7), family.AdminID)
	assert.Equal(t, []string{"vegetarian"}, family.DietaryRestrictions)
	require.Len(t, family.Members, 1)
	assert.Equal(t, "admin", family.Members[0].Role)
	assert.Equal(t, uint64(7), family.Members[0].UserID)
}

func TestGetFamilyRequiresMembership(t *testing.T) {
	familyRepo := newFakeFamilyRepo()
	svc := NewFamilyService(familyRepo)
	ctx := context.Background()

	family := familyRepo.addFamily(&model.Family{Name: "Casa", AdminID: 1})
	familyRepo.addMember(family.ID, 1, "admin")

	_, err := svc.GetFamily(ctx, family.ID, 9)
	assert.ErrorIs(t, err, ErrNotAMember)

	result, err := svc.GetFamily(ctx, family.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, family.ID, result.ID)

	_, err = svc.GetFamily(ctx, 404, 1)
	assert.ErrorIs(t, err, ErrFamilyNotFound)
}

func TestGetMyFamilies(t *testing.T) {
	familyRepo := newFakeFamilyRepo()
	svc := NewFamilyService(familyRepo)

	first := familyRepo.addFamily(&model.Family{Name: "A", AdminID: 1})
	familyRepo.addMember(first.ID, 1, "admin")
	familyRepo.addMember(first.ID, 2, "member")
	second := familyRepo.addFamily(&model.Family{Name: "B", AdminID: 3})
	familyRepo.addMember(second.ID, 3, "admin")

	families, err := svc.GetMyFamilies(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, families, 1)
	assert.Equal(t, "A", families[0].Name)
}

func TestDeleteFamilyAdminOnly(t *testing.T) {
	familyRepo := newFakeFamilyRepo()
	svc := NewFamilyService(familyRepo)
	ctx := context.Background()

	family := familyRepo.addFamily(&model.Family{Name: "Casa", AdminID: 1})
	familyRepo.addMember(family.ID, 1, "admin")
	familyRepo.addMember(family.ID, 2, "member")

	err := svc.DeleteFamily(ctx, family.ID, 2)
	assert.ErrorIs(t, err, ErrNotAdmin)

	require.NoError(t, svc.DeleteFamily(ctx, family.ID, 1))
	assert.NotContains(t, familyRepo.families, family.ID)
}

func TestLeaveFamily(t *testing.T) {
	familyRepo := newFakeFamilyRepo()
	svc := NewFamilyService(familyRepo)
	ctx := context.Background()

	family := familyRepo.addFamily(&model.Family{Name: "Casa", AdminID: 1})
	familyRepo.addMember(family.ID, 1, "admin")
	familyRepo.addMember(family.ID, 2, "member")

	err := svc.LeaveFamily(ctx, family.ID, 1)
	assert.ErrorIs(t, err, ErrAdminCannotLeave)

	err = svc.LeaveFamily(ctx, family.ID, 9)
	assert.ErrorIs(t, err, ErrNotAMember)

	require.NoError(t, svc.LeaveFamily(ctx, family.ID, 2))
	member, err := familyRepo.GetMember(ctx, family.ID, 2)
	require.NoError(t, err)
	assert.Nil(t, member)
}
