package services

import (
	"fmt"
	"html"
)

// HTML bodies for the transactional emails. Kept as plain string building;
// the layouts are small enough that html/template would be ceremony.

func productRow(p ProductLine) string {
	return fmt.Sprintf(`
      <tr style="border-bottom: 1px solid #eee;">
        <td style="padding: 10px; color: #333;">%s <br> <span style="font-size: 12px; color: #777;">ID: %s</span></td>
        <td style="padding: 10px; color: #333; text-align: center;">%d</td>
        <td style="padding: 10px; color: #333; text-align: right;">₹%.2f</td>
      </tr>`,
		html.EscapeString(p.Name), html.EscapeString(p.ID), p.Quantity, p.Price*float64(p.Quantity))
}

func renderNewOrderNotification(n NewOrderNotification) string {
	return fmt.Sprintf(`
      <div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
        <h2 style="color: #2c3e50;">New Order Received 🚀</h2>
        <p style="color: #7f8c8d;">Order #%d</p>
        <div style="background-color: #e8f4fd; border-left: 4px solid #3498db; padding: 15px; margin-bottom: 20px;">
          <p style="margin: 0; color: #2980b9; font-weight: bold;">Action Required: Please review and confirm this order.</p>
        </div>
        <h3 style="color: #333;">Customer Details</h3>
        <p style="color: #555;"><strong>Name:</strong> %s<br>
        <strong>Email:</strong> %s<br>
        <strong>Address:</strong> %s</p>
        <table style="width: 100%%; border-collapse: collapse;">
          <thead>
            <tr style="background-color: #f2f2f2;">
              <th style="padding: 10px; text-align: left; color: #555;">Product</th>
              <th style="padding: 10px; text-align: center; color: #555;">Qty</th>
              <th style="padding: 10px; text-align: right; color: #555;">Amount</th>
            </tr>
          </thead>
          <tbody>%s</tbody>
        </table>
        <p style="text-align: right; font-weight: bold; color: #27ae60;">Total Amount: ₹%.2f</p>
        <p style="color: #95a5a6; font-size: 14px;">Buynic.shop Automated System</p>
      </div>`,
		n.OrderID,
		html.EscapeString(n.CustomerName),
		html.EscapeString(n.CustomerEmail),
		html.EscapeString(n.Address),
		productRow(n.Product),
		n.TotalAmount)
}

func renderOrderConfirmation(n OrderConfirmation) string {
	return fmt.Sprintf(`
      <div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
        <h2 style="color: #27ae60;">Your Order is Confirmed ✅</h2>
        <p style="color: #7f8c8d;">Order #%d</p>
        <p style="color: #333;">Hi %s,</p>
        <p style="color: #555;">Thank you for shopping with us! Your order has been confirmed and is being prepared for shipping. You pay in cash when it arrives.</p>
        <table style="width: 100%%; border-collapse: collapse;">
          <tbody>%s</tbody>
        </table>
        <p style="text-align: right; font-weight: bold; color: #27ae60;">Total Amount: ₹%.2f</p>
        <p style="color: #95a5a6; font-size: 14px;">Buynic.shop</p>
      </div>`,
		n.OrderID,
		html.EscapeString(n.CustomerName),
		productRow(n.Product),
		n.TotalAmount)
}

func renderOrderDelivered(n OrderDelivered) string {
	return fmt.Sprintf(`
      <div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
        <h2 style="color: #27ae60;">Your Order Has Been Delivered 📦</h2>
        <p style="color: #7f8c8d;">Order #%d</p>
        <p style="color: #333;">Hi %s,</p>
        <p style="color: #555;">Your order of <strong>%s</strong> (ID: %s) has been delivered. We hope you love it! If anything is wrong, reply to this email and we will sort it out.</p>
        <p style="color: #95a5a6; font-size: 14px;">Buynic.shop</p>
      </div>`,
		n.OrderID,
		html.EscapeString(n.CustomerName),
		html.EscapeString(n.Product.Name),
		html.EscapeString(n.Product.ID))
}

func renderOrderCancelled(n OrderCancelled) string {
	return fmt.Sprintf(`
      <div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
        <h2 style="color: #c0392b;">Your Order Has Been Cancelled</h2>
        <p style="color: #7f8c8d;">Order #%d</p>
        <p style="color: #333;">Hi %s,</p>
        <p style="color: #555;">Your order of <strong>%s</strong> (ID: %s) has been cancelled. No payment was collected. If you did not request this, please contact us.</p>
        <p style="color: #95a5a6; font-size: 14px;">Buynic.shop</p>
      </div>`,
		n.OrderID,
		html.EscapeString(n.CustomerName),
		html.EscapeString(n.Product.Name),
		html.EscapeString(n.Product.ID))
}

func renderContactMessage(n ContactMessage) string {
	return fmt.Sprintf(`
      <div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
        <h2 style="color: #2c3e50;">Contact Form Message</h2>
        <p style="color: #555;"><strong>From:</strong> %s (%s)</p>
        <p style="color: #333;">%s</p>
      </div>`,
		html.EscapeString(n.Name),
		html.EscapeString(n.Email),
		html.EscapeString(n.Message))
}
