package services

import (
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/buynic/storefront-api/config"
)

// ProductLine is the single product entry carried by order emails
type ProductLine struct {
	Name     string
	ID       string
	ImageURL string
	Quantity int
	Price    float64
}

// NewOrderNotification is sent to the store operator when a checkout completes
type NewOrderNotification struct {
	OrderID       uint
	CustomerName  string
	CustomerEmail string
	TotalAmount   float64
	Address       string
	Product       ProductLine
}

// OrderConfirmation is sent to the customer when the operator confirms an order
type OrderConfirmation struct {
	OrderID       uint
	CustomerName  string
	CustomerEmail string
	TotalAmount   float64
	Product       ProductLine
}

// OrderDelivered is sent to the customer when an order is marked delivered.
// No pricing is included.
type OrderDelivered struct {
	OrderID       uint
	CustomerName  string
	CustomerEmail string
	Product       ProductLine
}

// OrderCancelled is sent to the customer when an order is cancelled.
// No pricing is included.
type OrderCancelled struct {
	OrderID       uint
	CustomerName  string
	CustomerEmail string
	Product       ProductLine
}

// ContactMessage relays a contact form submission to the store operator
type ContactMessage struct {
	Name    string
	Email   string
	Message string
}

// EmailService is the outbound notification sink. Delivery is best effort:
// callers log failures and never block on them.
type EmailService interface {
	SendNewOrderNotification(n NewOrderNotification) error
	SendOrderConfirmation(n OrderConfirmation) error
	SendOrderDelivered(n OrderDelivered) error
	SendOrderCancelled(n OrderCancelled) error
	SendContactMessage(n ContactMessage) error
}

// SendGridEmailService implements EmailService using the SendGrid API
type SendGridEmailService struct {
	client     *sendgrid.Client
	sender     string
	adminEmail string
}

var emailServiceInstance EmailService

// InitEmailService initializes the email service with SendGrid
func InitEmailService(cfg *config.Config) EmailService {
	emailServiceInstance = &SendGridEmailService{
		client:     sendgrid.NewSendClient(cfg.SendGridAPIKey),
		sender:     cfg.EmailSender,
		adminEmail: cfg.AdminEmail,
	}
	return emailServiceInstance
}

// GetEmailService returns the initialized email service instance
func GetEmailService() EmailService {
	return emailServiceInstance
}

// SetEmailService sets the email service instance (primarily for testing)
func SetEmailService(service EmailService) {
	emailServiceInstance = service
}

func (s *SendGridEmailService) send(toName, toEmail, subject, htmlBody string) error {
	from := mail.NewEmail("Buynic Shop", s.sender)
	to := mail.NewEmail(toName, toEmail)
	message := mail.NewSingleEmail(from, subject, to, htmlBody, htmlBody)

	response, err := s.client.Send(message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("email provider rejected message: status %d: %s", response.StatusCode, response.Body)
	}
	return nil
}

// SendNewOrderNotification notifies the store operator of a new order
func (s *SendGridEmailService) SendNewOrderNotification(n NewOrderNotification) error {
	subject := fmt.Sprintf("New Order Received - #%d", n.OrderID)
	return s.send("Store Admin", s.adminEmail, subject, renderNewOrderNotification(n))
}

// SendOrderConfirmation sends the order confirmation to the customer
func (s *SendGridEmailService) SendOrderConfirmation(n OrderConfirmation) error {
	subject := fmt.Sprintf("Your order #%d is confirmed!", n.OrderID)
	return s.send(n.CustomerName, n.CustomerEmail, subject, renderOrderConfirmation(n))
}

// SendOrderDelivered sends the delivery notice to the customer
func (s *SendGridEmailService) SendOrderDelivered(n OrderDelivered) error {
	subject := fmt.Sprintf("Your order #%d has been delivered", n.OrderID)
	return s.send(n.CustomerName, n.CustomerEmail, subject, renderOrderDelivered(n))
}

// SendOrderCancelled sends the cancellation notice to the customer
func (s *SendGridEmailService) SendOrderCancelled(n OrderCancelled) error {
	subject := fmt.Sprintf("Your order #%d has been cancelled", n.OrderID)
	return s.send(n.CustomerName, n.CustomerEmail, subject, renderOrderCancelled(n))
}

// SendContactMessage relays a contact form submission to the store operator
func (s *SendGridEmailService) SendContactMessage(n ContactMessage) error {
	subject := fmt.Sprintf("Contact form message from %s", n.Name)
	return s.send("Store Admin", s.adminEmail, subject, renderContactMessage(n))
}
