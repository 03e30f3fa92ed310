package jobs

import (
	"fmt"

	"github.com/siddhant14g/Real-shop/pkg/mail"
)

// OrderCompletedEmailJob tells the owner their order has been fulfilled.
// Dispatched once per successful Pending to Completed transition.
type OrderCompletedEmailJob struct {
	Email    string `json:"email"`
	UserName string `json:"name"`
	OrderID  string `json:"orderId"`
}

func (j *OrderCompletedEmailJob) Name() string { return "jobs.OrderCompletedEmail" }

func (j *OrderCompletedEmailJob) Handle() error {
	body := fmt.Sprintf(
		"<h2>Order completed</h2><p>Hi %s, your order <b>%s</b> has been completed. Thank you for shopping with RealShop!</p>",
		j.UserName, j.OrderID,
	)
	return mail.To(j.Email).
		Subject("Your RealShop order is complete").
		Body(body).
		Send()
}
