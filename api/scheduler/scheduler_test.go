package scheduler

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	dbMocks "github.com/adresse-io/signalement-api/databases/mocks"
	"github.com/adresse-io/signalement-api/mailer"
	mailerMocks "github.com/adresse-io/signalement-api/mailer/mocks"
	"github.com/adresse-io/signalement-api/models"
)

func TestExpireOrphanedSignalements(t *testing.T) {
	signalementDB := &dbMocks.SignalementDatabase{}

	known := models.Signalement{ID: primitive.NewObjectID(), CodeCommune: "37003", Status: models.SignalementStatusPending}
	orphan := models.Signalement{ID: primitive.NewObjectID(), CodeCommune: "99999", Status: models.SignalementStatusPending}

	signalementDB.On("Find", mock.Anything, bson.M{"status": models.SignalementStatusPending}, mock.Anything).
		Return([]models.Signalement{known, orphan}, nil)

	var updatedFilter bson.M
	signalementDB.On("UpdateOne", mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { updatedFilter = args.Get(1).(bson.M) }).
		Return(int64(1), nil)

	s := New(signalementDB, &mailerMocks.Service{})
	expired, err := s.ExpireOrphanedSignalements(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, int64(1), expired)
	assert.Equal(t, orphan.ID, updatedFilter["_id"])

	signalementDB.AssertNumberOfCalls(t, "UpdateOne", 1)
}

func TestExpireOrphanedSignalementsNothingToDo(t *testing.T) {
	signalementDB := &dbMocks.SignalementDatabase{}
	signalementDB.On("Find", mock.Anything, mock.Anything, mock.Anything).
		Return([]models.Signalement{}, nil)

	s := New(signalementDB, &mailerMocks.Service{})
	expired, err := s.ExpireOrphanedSignalements(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, int64(0), expired)
	signalementDB.AssertNotCalled(t, "UpdateOne", mock.Anything, mock.Anything, mock.Anything)
}

func TestPurgeCommune(t *testing.T) {
	signalementDB := &dbMocks.SignalementDatabase{}
	signalementDB.On("SoftDeleteMany", mock.Anything, bson.M{"codeCommune": "37003"}).Return(int64(5), nil)

	s := New(signalementDB, &mailerMocks.Service{})
	deleted, err := s.PurgeCommune(context.Background(), "37003")
	assert.NoError(t, err)
	assert.Equal(t, int64(5), deleted)
}

func TestWeeklyPendingReport(t *testing.T) {
	t.Setenv("WEEKLY_REPORT_RECIPIENTS", "ops@exemple.fr, support@exemple.fr")

	signalementDB := &dbMocks.SignalementDatabase{}
	signalementDB.On("Aggregate", mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			counts := args.Get(2).(*[]communeCount)
			*counts = []communeCount{{CodeCommune: "37003", Count: 4}}
		}).
		Return(nil)

	mailService := &mailerMocks.Service{}
	var sent []mailer.Message
	mailService.On("Send", mock.Anything, mock.AnythingOfType("mailer.Message")).
		Run(func(args mock.Arguments) { sent = append(sent, args.Get(1).(mailer.Message)) }).
		Return(nil)

	s := New(signalementDB, mailService)
	s.weeklyPendingReport()

	assert.Len(t, sent, 2)
	assert.Equal(t, "ops@exemple.fr", sent[0].To)
	assert.Equal(t, "weekly-report", sent[0].Template)
	assert.EqualValues(t, int64(4), sent[0].Context["total"])
}

func TestWeeklyPendingReportWithoutRecipients(t *testing.T) {
	t.Setenv("WEEKLY_REPORT_RECIPIENTS", "")

	signalementDB := &dbMocks.SignalementDatabase{}
	mailService := &mailerMocks.Service{}

	s := New(signalementDB, mailService)
	s.weeklyPendingReport()

	signalementDB.AssertNotCalled(t, "Aggregate", mock.Anything, mock.Anything, mock.Anything)
	mailService.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
}

func TestSplitRecipients(t *testing.T) {
	assert.Nil(t, splitRecipients(""))
	assert.Equal(t, []string{"a@b.fr"}, splitRecipients("a@b.fr"))
	assert.Equal(t, []string{"a@b.fr", "c@d.fr"}, splitRecipients(" a@b.fr , c@d.fr ,"))
}
