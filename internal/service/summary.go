package service

import (
	"fmt"
	"strings"

	"bookingdesk/internal/domain"
)

// FormatBookingSummary renders a confirmed booking as plain text for the
// operator to paste into a message to the guest.
func FormatBookingSummary(booking domain.Booking, vehicle domain.VehicleSearchResult, calc domain.Calculation) string {
	var b strings.Builder

	b.WriteString("=====================================\n")
	b.WriteString("        BOOKING CONFIRMATION\n")
	b.WriteString("=====================================\n")
	fmt.Fprintf(&b, "Booking ID: %s\n", booking.BookingID)
	if !booking.BookedAt.IsZero() {
		fmt.Fprintf(&b, "Date: %s\n", booking.BookedAt.Format("Jan 02, 2006 3:04 PM"))
	}
	fmt.Fprintf(&b, "Vehicle: %s", vehicle.Name)
	if vehicle.Identifier != "" {
		fmt.Fprintf(&b, " (%s)", vehicle.Identifier)
	}
	b.WriteString("\n\nTRIP\n")
	b.WriteString("-------------------------------------\n")
	for i, s := range booking.Segments {
		fmt.Fprintf(&b, "%d. %s %s  %s -> %s\n", i+1, s.StartDate, s.StartTime, s.PickupLocation, s.DropoffLocation)
	}

	b.WriteString("\nPRICE\n")
	b.WriteString("-------------------------------------\n")
	if calc.CalculationID != "" {
		for _, item := range calc.LineItems() {
			fmt.Fprintf(&b, "%-18s %s\n", item.Label+":", formatAmount(item.Amount))
		}
		b.WriteString("-------------------------------------\n")
	}
	fmt.Fprintf(&b, "%-18s %s\n", "TOTAL:", formatAmount(booking.TotalPrice))

	if booking.InvoiceURL != "" {
		fmt.Fprintf(&b, "\nInvoice: %s\n", booking.InvoiceURL)
	}
	b.WriteString("=====================================\n")
	return b.String()
}

func formatAmount(f float64) string {
	return fmt.Sprintf("%.2f", f)
}
