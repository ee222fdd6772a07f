package controls_test

import (
	"context"
	"errors"
	"testing"

	"github.com/disgoorg/snowflake/v2"
	"github.com/ellavondegurechaff/allowlist/allowlist/controls"
	"github.com/ellavondegurechaff/allowlist/allowlist/controls/mock"
	"github.com/ellavondegurechaff/allowlist/allowlist/database/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const reviewChannel = snowflake.ID(500)

func TestReconciler_Run(t *testing.T) {
	ctrl := gomock.NewController(t)
	gateway := mock.NewMockMessageGateway(ctrl)
	pending := mock.NewMockPendingLister(ctrl)
	registry := controls.NewRegistry()

	gateway.EXPECT().FindIntakeMessage(gomock.Any()).Return(snowflake.ID(10), snowflake.ID(11), true, nil)
	gateway.EXPECT().AttachIntakeControls(gomock.Any(), snowflake.ID(10), snowflake.ID(11)).Return(nil)

	pending.EXPECT().GetPending(gomock.Any()).Return([]*models.Application{
		{ID: 1, ChannelID: "501", MessageID: "601", Status: models.ApplicationPending},
		{ID: 2, MessageID: "602", Status: models.ApplicationPending},
		{ID: 3, Status: models.ApplicationPending},
		{ID: 4, ChannelID: "501", MessageID: "604", Status: models.ApplicationPending},
		{ID: 5, ChannelID: "501", MessageID: "not-a-snowflake", Status: models.ApplicationPending},
	}, nil)

	gateway.EXPECT().AttachReviewControls(gomock.Any(), snowflake.ID(501), snowflake.ID(601), int64(1)).Return(nil)
	gateway.EXPECT().AttachReviewControls(gomock.Any(), reviewChannel, snowflake.ID(602), int64(2)).Return(nil)
	gateway.EXPECT().AttachReviewControls(gomock.Any(), snowflake.ID(501), snowflake.ID(604), int64(4)).
		Return(errors.New("Unknown Message"))

	report, err := controls.NewReconciler(gateway, pending, registry, reviewChannel).Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, controls.Report{
		IntakeRestored:  true,
		ReviewsRestored: 2,
		ReviewsSkipped:  1,
		ReviewsFailed:   2,
	}, report)

	intake, ok := registry.Lookup("intake")
	require.True(t, ok)
	assert.Equal(t, snowflake.ID(11), intake.MessageID)

	review, ok := registry.Lookup("review/2")
	require.True(t, ok)
	assert.Equal(t, reviewChannel, review.ChannelID)
	assert.Equal(t, int64(2), review.ApplicationID)

	_, ok = registry.Lookup("review/4")
	assert.False(t, ok)
	assert.Equal(t, 3, registry.Len())
}

func TestReconciler_IntakeFailureDoesNotStopReviews(t *testing.T) {
	ctrl := gomock.NewController(t)
	gateway := mock.NewMockMessageGateway(ctrl)
	pending := mock.NewMockPendingLister(ctrl)

	gateway.EXPECT().FindIntakeMessage(gomock.Any()).Return(snowflake.ID(0), snowflake.ID(0), false, errors.New("Missing Access"))
	pending.EXPECT().GetPending(gomock.Any()).Return([]*models.Application{
		{ID: 1, ChannelID: "501", MessageID: "601"},
	}, nil)
	gateway.EXPECT().AttachReviewControls(gomock.Any(), snowflake.ID(501), snowflake.ID(601), int64(1)).Return(nil)

	report, err := controls.NewReconciler(gateway, pending, controls.NewRegistry(), reviewChannel).Run(context.Background())

	require.NoError(t, err)
	assert.False(t, report.IntakeRestored)
	assert.Equal(t, 1, report.ReviewsRestored)
}

func TestReconciler_NoIntakeMessage(t *testing.T) {
	ctrl := gomock.NewController(t)
	gateway := mock.NewMockMessageGateway(ctrl)
	pending := mock.NewMockPendingLister(ctrl)

	gateway.EXPECT().FindIntakeMessage(gomock.Any()).Return(snowflake.ID(0), snowflake.ID(0), false, nil)
	pending.EXPECT().GetPending(gomock.Any()).Return(nil, nil)

	report, err := controls.NewReconciler(gateway, pending, controls.NewRegistry(), reviewChannel).Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, controls.Report{}, report)
}

func TestReconciler_PendingListFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	gateway := mock.NewMockMessageGateway(ctrl)
	pending := mock.NewMockPendingLister(ctrl)

	gateway.EXPECT().FindIntakeMessage(gomock.Any()).Return(snowflake.ID(0), snowflake.ID(0), false, nil)
	pending.EXPECT().GetPending(gomock.Any()).Return(nil, errors.New("connection reset"))

	_, err := controls.NewReconciler(gateway, pending, controls.NewRegistry(), reviewChannel).Run(context.Background())

	assert.ErrorContains(t, err, "connection reset")
}

func TestRegistry(t *testing.T) {
	r := controls.NewRegistry()
	r.Bind(controls.Binding{ControlID: "review/9", MessageID: 1, ApplicationID: 9})
	r.Bind(controls.Binding{ControlID: "review/9", MessageID: 2, ApplicationID: 9})

	b, ok := r.Lookup("review/9")
	require.True(t, ok)
	assert.Equal(t, snowflake.ID(2), b.MessageID)

	r.Unbind("review/9")
	_, ok = r.Lookup("review/9")
	assert.False(t, ok)
	assert.Equal(t, "review/9", controls.ReviewControlID(9))
}

func TestReconciler_SecondRunLeavesBoundReviewsAlone(t *testing.T) {
	ctrl := gomock.NewController(t)
	gateway := mock.NewMockMessageGateway(ctrl)
	pending := mock.NewMockPendingLister(ctrl)
	registry := controls.NewRegistry()
	reconciler := controls.NewReconciler(gateway, pending, registry, reviewChannel)

	gateway.EXPECT().FindIntakeMessage(gomock.Any()).Return(snowflake.ID(0), snowflake.ID(0), false, nil).Times(2)
	pending.EXPECT().GetPending(gomock.Any()).Return([]*models.Application{
		{ID: 1, ChannelID: "501", MessageID: "601"},
	}, nil).Times(2)
	gateway.EXPECT().AttachReviewControls(gomock.Any(), snowflake.ID(501), snowflake.ID(601), int64(1)).Return(nil).Times(1)

	first, err := reconciler.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, first.ReviewsRestored)

	second, err := reconciler.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, controls.Report{ReviewsUnchanged: 1}, second)
	assert.Equal(t, 1, registry.Len())
}

func TestReconciler_ReattachesWhenReviewMessageChanged(t *testing.T) {
	ctrl := gomock.NewController(t)
	gateway := mock.NewMockMessageGateway(ctrl)
	pending := mock.NewMockPendingLister(ctrl)
	registry := controls.NewRegistry()
	registry.Bind(controls.Binding{ControlID: "review/1", ChannelID: 501, MessageID: 600, ApplicationID: 1})

	gateway.EXPECT().FindIntakeMessage(gomock.Any()).Return(snowflake.ID(0), snowflake.ID(0), false, nil)
	pending.EXPECT().GetPending(gomock.Any()).Return([]*models.Application{
		{ID: 1, ChannelID: "501", MessageID: "601"},
	}, nil)
	gateway.EXPECT().AttachReviewControls(gomock.Any(), snowflake.ID(501), snowflake.ID(601), int64(1)).Return(nil)

	report, err := controls.NewReconciler(gateway, pending, registry, reviewChannel).Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, report.ReviewsRestored)
	b, ok := registry.Lookup("review/1")
	require.True(t, ok)
	assert.Equal(t, snowflake.ID(601), b.MessageID)
}
