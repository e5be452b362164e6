package render

import (
	"strings"
	"testing"

	"aqi-notifier/internal/models"
	"aqi-notifier/internal/severity"
)

func TestWhatsAppUpdateFormatting(t *testing.T) {
	m := models.Measurement{AQI: 187.6, PM25: 92.25, PM10: 140}
	band := severity.Classify(m.AQI)

	body := WhatsAppUpdate(m, band, "Shivaji Nagar")

	// AQI renders as an integer, concentrations with one decimal.
	for _, want := range []string{"*AQI:* 187", "PM2.5: 92.2 µg/m³", "PM10: 140.0 µg/m³", "Shivaji Nagar", "Unhealthy"} {
		if !strings.Contains(body, want) {
			t.Errorf("WhatsAppUpdate missing %q in:\n%s", want, body)
		}
	}
}

func TestWhatsAppUpdateZeroDefaults(t *testing.T) {
	body := WhatsAppUpdate(models.Measurement{}, severity.Classify(0), "All Wards")
	if body == "" {
		t.Fatal("renderer must always produce a payload")
	}
	if !strings.Contains(body, "*AQI:* 0") || !strings.Contains(body, "PM2.5: 0.0") {
		t.Errorf("zero-valued fields should render as defaults:\n%s", body)
	}
}

func TestWhatsAppPrecautionsTier(t *testing.T) {
	body := WhatsAppPrecautions(220, "Ward 12")
	if !strings.Contains(body, "*Current AQI:* 220") {
		t.Errorf("missing integer AQI in precautions body:\n%s", body)
	}
	if !strings.Contains(body, "Very Unhealthy") {
		t.Errorf("AQI 220 should pick the very-unhealthy tier:\n%s", body)
	}
}

func TestEmailUpdatePayload(t *testing.T) {
	m := models.Measurement{AQI: 55, PM25: 30.5, PM10: 60.1}
	band := severity.Classify(m.AQI)

	p := EmailUpdate(m, band, "Ward 7")

	if !strings.Contains(p.Subject, "Ward 7") || !strings.Contains(p.Subject, "55") || !strings.Contains(p.Subject, "Moderate") {
		t.Errorf("subject = %q", p.Subject)
	}
	if !strings.Contains(p.HTML, band.Color) {
		t.Error("HTML body should carry the band color tag")
	}
	if !strings.Contains(p.Text, "PM2.5: 30.5 µg/m³") {
		t.Errorf("plain-text alternative missing formatted PM2.5:\n%s", p.Text)
	}
}

func TestEmailWelcomeScope(t *testing.T) {
	ward := "22"
	withWard := EmailWelcome(&ward)
	if !strings.Contains(withWard.Text, "for ward 22") {
		t.Errorf("welcome text missing ward scope:\n%s", withWard.Text)
	}
	allWards := EmailWelcome(nil)
	if !strings.Contains(allWards.Text, "for all wards") {
		t.Errorf("welcome text missing all-wards scope:\n%s", allWards.Text)
	}
}
