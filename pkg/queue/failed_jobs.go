package queue

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/siddhant14g/Real-shop/pkg/logger"
)

// failedJobDoc is the persisted form of a FailedJob.
type failedJobDoc struct {
	JobName  string    `bson:"jobName"`
	Payload  string    `bson:"payload"`
	Error    string    `bson:"error"`
	Attempts int       `bson:"attempts"`
	FailedAt time.Time `bson:"failedAt"`
}

var failedCol *mongo.Collection

// UseFailedJobCollection enables durable failed-job records. Without it,
// failures are only kept in memory for the life of the process.
func UseFailedJobCollection(col *mongo.Collection) {
	defaultManager.mu.Lock()
	defer defaultManager.mu.Unlock()
	failedCol = col
}

func (m *Manager) persistFailed(job Job, payload string, cause error, attempts int) {
	rec := FailedJob{
		JobName:  job.Name(),
		Payload:  payload,
		Err:      cause,
		FailedAt: time.Now(),
		Attempts: attempts,
	}

	m.mu.Lock()
	m.failed = append(m.failed, rec)
	col := failedCol
	m.mu.Unlock()

	if col == nil {
		return
	}

	msg := ""
	if cause != nil {
		msg = cause.Error()
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := col.InsertOne(ctx, failedJobDoc{
		JobName:  rec.JobName,
		Payload:  rec.Payload,
		Error:    msg,
		Attempts: rec.Attempts,
		FailedAt: rec.FailedAt,
	}); err != nil {
		logger.Error("queue: persist failed job", "type", rec.JobName, "error", err)
	}
}
