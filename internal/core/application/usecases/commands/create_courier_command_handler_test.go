package commands_test

import (
	"testing"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewCreateCourierCommand(t *testing.T) {
	t.Run("should fail without name", func(t *testing.T) {
		_, err := commands.NewCreateCourierCommand(kernel.NewUUID(), "")
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("zero value should fail validation", func(t *testing.T) {
		cmd := commands.CreateCourierCommand{}
		require.ErrorIs(t, cmd.Validate(), commands.ErrCreateCourierCommandIsNotConstructed)
	})
}

func TestCreateCourierCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewCreateCourierCommand(kernel.NewUUID(), "Jean Dupont")
	require.NoError(t, err)

	repo := new(MockCourierRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("CourierRepository").Return(repo).Once(),
		repo.On("Add", mock.Anything, mock.AnythingOfType("*courier.Courier")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockCourierUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateCourierCommandHandler(factory)
	require.NoError(t, h.Handle(ctx, cmd))
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestCreateCourierCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	factory := new(MockCourierUoWFactory)
	h := commands.NewCreateCourierCommandHandler(factory)
	err := h.Handle(ctx, commands.CreateCourierCommand{})
	require.Error(t, err)
	factory.AssertNotCalled(t, "Create")
}
