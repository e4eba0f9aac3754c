package email

import (
    "fmt"
    "strings"

    "arbt-storefront-api/models"
    "arbt-storefront-api/utils"
)

// OrderReceiptBody renders the confirmation mail sent once the worker has
// verified an order.
func OrderReceiptBody(o *models.Order) string {
    var rows strings.Builder
    for _, it := range o.Items {
        rows.WriteString(fmt.Sprintf(
            "<tr><td>%s</td><td align=\"center\">%d</td><td align=\"right\">%s</td></tr>",
            it.Name, it.Quantity, utils.FormatPeso(it.Price*float64(it.Quantity))))
    }

    return fmt.Sprintf(`
<h2>Thank you for your order!</h2>
<p>Order <strong>%s</strong> has been confirmed.</p>
<table width="100%%" cellpadding="6">
  <tr><th align="left">Item</th><th>Qty</th><th align="right">Total</th></tr>
  %s
</table>
<p>Subtotal: %s<br>
Service fee: %s<br>
<strong>Total: %s</strong></p>
<p>You can follow your order on the tracker page.</p>
`, o.ID, rows.String(), utils.FormatPeso(o.Subtotal),
        utils.FormatPeso(o.ServiceFee), utils.FormatPeso(o.Total))
}

// BookingConfirmationBody renders the mail sent when a booking is approved.
func BookingConfirmationBody(b *models.Booking) string {
    return fmt.Sprintf(`
<h2>Your booking is confirmed</h2>
<p>Hi %s,</p>
<p>Your <strong>%s</strong> appointment is scheduled for %s.</p>
<p>Our team will contact you at %s if anything changes.</p>
`, b.Name, b.Service, b.ScheduledAt.Format("Monday, January 2 2006 at 3:04 PM"), b.ContactNumber)
}

// BookingReminderBody renders the reminder sent the day before an approved
// appointment.
func BookingReminderBody(b *models.Booking) string {
    return fmt.Sprintf(`
<h2>Appointment reminder</h2>
<p>Hi %s,</p>
<p>This is a reminder for your <strong>%s</strong> appointment on %s.</p>
`, b.Name, b.Service, b.ScheduledAt.Format("Monday, January 2 2006 at 3:04 PM"))
}
