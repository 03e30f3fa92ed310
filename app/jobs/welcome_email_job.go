// Package jobs contains the background jobs dispatched onto the queue.
// Register every job type in RegisterAll at boot so workers can decode them.
package jobs

import (
	"fmt"

	"github.com/siddhant14g/Real-shop/pkg/mail"
	"github.com/siddhant14g/Real-shop/pkg/queue"
)

// RegisterAll wires every job type into the queue registry.
func RegisterAll() {
	queue.Register("jobs.WelcomeEmail", func() queue.Job { return &WelcomeEmailJob{} })
	queue.Register("jobs.OrderCompletedEmail", func() queue.Job { return &OrderCompletedEmailJob{} })
}

// WelcomeEmailJob greets a freshly registered user.
type WelcomeEmailJob struct {
	Email    string `json:"email"`
	UserName string `json:"name"`
}

func (j *WelcomeEmailJob) Name() string { return "jobs.WelcomeEmail" }

func (j *WelcomeEmailJob) Handle() error {
	body := fmt.Sprintf(
		"<h2>Welcome to RealShop, %s!</h2><p>Your account is ready. Browse the catalog and place your first order.</p>",
		j.UserName,
	)
	return mail.To(j.Email).
		Subject("Welcome to RealShop").
		Body(body).
		Send()
}
