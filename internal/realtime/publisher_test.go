package realtime

import (
	"context"
	"os"
	"testing"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"

	"gympass/internal/logger"
)

func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}

func TestChannelNames(t *testing.T) {
	assert.Equal(t, "gym:42", GymChannel(42))
	assert.Equal(t, "user:7", UserChannel(7))
}

func TestPublish(t *testing.T) {
	db, mock := redismock.NewClientMock()
	svc := &Service{redis: db}

	mock.Regexp().ExpectPublish("gym:3", `.*newPendingCheckIn.*`).SetVal(1)

	svc.Publish(context.Background(), GymChannel(3), EventNewPendingCheckIn, map[string]interface{}{
		"checkInId": 10,
		"userId":    7,
		"gymId":     3,
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPublishSwallowsRedisErrors(t *testing.T) {
	db, mock := redismock.NewClientMock()
	svc := &Service{redis: db}

	mock.Regexp().ExpectPublish("user:7", `.*`).SetErr(assert.AnError)

	// must not panic or return an error to the caller
	svc.Publish(context.Background(), UserChannel(7), EventCheckInStatusUpdated, map[string]interface{}{
		"checkInId": 10,
		"status":    "verified",
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}
