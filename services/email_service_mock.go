package services

import (
	"fmt"
	"sync"
)

// MockEmailService is a recording implementation of EmailService for testing
type MockEmailService struct {
	mu sync.Mutex

	NewOrderNotifications []NewOrderNotification
	OrderConfirmations    []OrderConfirmation
	OrderDelivereds       []OrderDelivered
	OrderCancelleds       []OrderCancelled
	ContactMessages       []ContactMessage

	// FailNext makes the next dispatch return an error, for verifying that
	// notification failures never surface to the caller
	FailNext bool
}

// NewMockEmailService creates a new mock email service
func NewMockEmailService() *MockEmailService {
	return &MockEmailService{}
}

// SetAsMockForTesting sets this mock as the global email service instance
func (m *MockEmailService) SetAsMockForTesting() {
	SetEmailService(m)
}

func (m *MockEmailService) maybeFail() error {
	if m.FailNext {
		m.FailNext = false
		return fmt.Errorf("mock email delivery failure")
	}
	return nil
}

// SendNewOrderNotification records the notification
func (m *MockEmailService) SendNewOrderNotification(n NewOrderNotification) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.maybeFail(); err != nil {
		return err
	}
	m.NewOrderNotifications = append(m.NewOrderNotifications, n)
	return nil
}

// SendOrderConfirmation records the notification
func (m *MockEmailService) SendOrderConfirmation(n OrderConfirmation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.maybeFail(); err != nil {
		return err
	}
	m.OrderConfirmations = append(m.OrderConfirmations, n)
	return nil
}

// SendOrderDelivered records the notification
func (m *MockEmailService) SendOrderDelivered(n OrderDelivered) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.maybeFail(); err != nil {
		return err
	}
	m.OrderDelivereds = append(m.OrderDelivereds, n)
	return nil
}

// SendOrderCancelled records the notification
func (m *MockEmailService) SendOrderCancelled(n OrderCancelled) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.maybeFail(); err != nil {
		return err
	}
	m.OrderCancelleds = append(m.OrderCancelleds, n)
	return nil
}

// SendContactMessage records the message
func (m *MockEmailService) SendContactMessage(n ContactMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.maybeFail(); err != nil {
		return err
	}
	m.ContactMessages = append(m.ContactMessages, n)
	return nil
}

// TotalDispatched returns how many emails of any kind were recorded
func (m *MockEmailService) TotalDispatched() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.NewOrderNotifications) + len(m.OrderConfirmations) +
		len(m.OrderDelivereds) + len(m.OrderCancelleds) + len(m.ContactMessages)
}

// Clear removes all recorded notifications
func (m *MockEmailService) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.NewOrderNotifications = nil
	m.OrderConfirmations = nil
	m.OrderDelivereds = nil
	m.OrderCancelleds = nil
	m.ContactMessages = nil
}
