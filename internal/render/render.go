// Package render formats measurements and severity bands into
// channel-specific payloads. Pure functions: no network or storage access,
// AQI values render as integers and concentrations with one decimal.
package render

import (
	"fmt"

	"aqi-notifier/internal/models"
	"aqi-notifier/internal/severity"
)

// EmailPayload is the subject/body pair for the email channel. Text is the
// plain-text alternative attached alongside the HTML part.
type EmailPayload struct {
	Subject string
	HTML    string
	Text    string
}

// WhatsAppUpdate renders the regular AQI update for the chat channel.
func WhatsAppUpdate(m models.Measurement, band severity.Band, location string) string {
	return fmt.Sprintf(`🌍 *JanDrishti AQI Update*

📍 *Location:* %s
%s *AQI:* %d - %s %s

📊 *Pollutant Levels:*
• PM2.5: %.1f µg/m³
• PM10: %.1f µg/m³

💡 *Health Advice:*
%s

🛡️ *Precautions:*
• Keep windows closed if AQI > 150
• Use N95 masks when going out
• Avoid outdoor exercise
• Use air purifiers indoors
• Stay hydrated

📱 Stay informed with JanDrishti
For more details, visit: jandrishti.in`,
		location, band.Emoji, int(m.AQI), band.Label, band.Emoji,
		m.PM25, m.PM10, band.Advice)
}

// WhatsAppPrecautions renders the standalone precautions message sent when
// AQI crosses the precaution or critical gate.
func WhatsAppPrecautions(aqi float64, location string) string {
	return fmt.Sprintf(`🛡️ *JanDrishti Safety Precautions*

📍 *Location:* %s
📊 *Current AQI:* %d

%s

📞 *Emergency Helplines:*
• Health Emergency: 108
• Pollution Control: 1800-11-0031
• Municipal Corp: 1800-11-3344

Stay safe! 🌱`,
		location, int(aqi), severity.Precautions(aqi))
}

// EmailUpdate renders the AQI update email: subject, HTML body and the
// plain-text alternative.
func EmailUpdate(m models.Measurement, band severity.Band, location string) EmailPayload {
	subject := fmt.Sprintf("%s AQI Update: %s - %d (%s)",
		band.Emoji, location, int(m.AQI), band.Label)

	html := fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<style>
body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
.container { max-width: 600px; margin: 0 auto; padding: 20px; }
.header { background: linear-gradient(135deg, #667eea 0%%, #764ba2 100%%); color: white; padding: 30px; text-align: center; border-radius: 10px 10px 0 0; }
.content { background: #f9fafb; padding: 30px; border-radius: 0 0 10px 10px; }
.aqi-box { background: white; border-left: 5px solid %[1]s; padding: 20px; margin: 20px 0; border-radius: 5px; }
.aqi-value { font-size: 48px; font-weight: bold; color: %[1]s; margin: 10px 0; }
.status { font-size: 20px; color: %[1]s; margin: 10px 0; }
.info-box { background: white; padding: 20px; margin: 15px 0; border-radius: 5px; }
.advice-box { background: #fef3c7; border-left: 5px solid #f59e0b; padding: 20px; margin: 20px 0; border-radius: 5px; }
.footer { text-align: center; padding: 20px; color: #6b7280; font-size: 12px; }
</style>
</head>
<body>
<div class="container">
<div class="header"><h1>🌍 JanDrishti AQI Update</h1><p>Air Quality Index Report</p></div>
<div class="content">
<div class="aqi-box">
<div style="font-size: 14px; color: #6b7280;">📍 Location</div>
<div style="font-size: 18px; font-weight: bold;">%[2]s</div>
<div class="aqi-value">%[3]d</div>
<div class="status">%[4]s %[5]s</div>
</div>
<div class="info-box">
<h3>📊 Pollutant Levels</h3>
<p>PM2.5: <strong>%[6].1f µg/m³</strong></p>
<p>PM10: <strong>%[7].1f µg/m³</strong></p>
</div>
<div class="advice-box"><h3>💡 Health Advice</h3><p>%[8]s</p></div>
</div>
<div class="footer">
<p>📱 Stay informed with JanDrishti</p>
<p>Visit <a href="https://jandrishti.in">jandrishti.in</a> for more details</p>
<p>To unsubscribe from these updates, please log in to your account</p>
</div>
</div>
</body>
</html>`,
		band.Color, location, int(m.AQI), band.Label, band.Emoji,
		m.PM25, m.PM10, band.Advice)

	text := fmt.Sprintf(`🌍 JanDrishti AQI Update

📍 Location: %s
%s AQI: %d - %s

📊 Pollutant Levels:
• PM2.5: %.1f µg/m³
• PM10: %.1f µg/m³

💡 Health Advice:
%s

📱 Stay informed with JanDrishti
Visit jandrishti.in for more details

To unsubscribe, log in to your account`,
		location, band.Emoji, int(m.AQI), band.Label,
		m.PM25, m.PM10, band.Advice)

	return EmailPayload{Subject: subject, HTML: html, Text: text}
}

// EmailWelcome renders the one-time welcome email sent after an email
// subscription is created. A nil ward means the all-wards aggregate.
func EmailWelcome(wardNo *string) EmailPayload {
	scope := "for all wards"
	if wardNo != nil && *wardNo != "" {
		scope = fmt.Sprintf("for ward %s", *wardNo)
	}

	subject := "🌍 Welcome to JanDrishti AQI Updates!"

	html := fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; color: #333;">
<div style="max-width: 600px; margin: 0 auto; padding: 20px;">
<div style="background: linear-gradient(135deg, #667eea 0%%, #764ba2 100%%); color: white; padding: 30px; text-align: center; border-radius: 10px 10px 0 0;">
<h1>🌍 Welcome to JanDrishti!</h1><p>Air Quality Updates</p>
</div>
<div style="background: #f9fafb; padding: 30px; border-radius: 0 0 10px 10px;">
<h2 style="color: #065f46;">✅ Subscription Successful!</h2>
<p>You've successfully subscribed to AQI updates %s.</p>
<h3>📬 What You'll Receive:</h3>
<ul>
<li><strong>Daily AQI Updates</strong> - Get air quality reports every morning</li>
<li><strong>Health Precautions</strong> - Important safety recommendations</li>
<li><strong>Emergency Alerts</strong> - Immediate notifications for critical conditions</li>
</ul>
</div>
<div style="text-align: center; padding: 20px; color: #6b7280; font-size: 12px;">
<p>📱 Stay informed, stay safe! 🌱</p>
<p>Visit <a href="https://jandrishti.in">jandrishti.in</a> to manage your subscription</p>
</div>
</div>
</body>
</html>`, scope)

	text := fmt.Sprintf(`🌍 Welcome to JanDrishti!

✅ Subscription Successful!
You've successfully subscribed to AQI updates %s.

📬 What You'll Receive:
• Daily AQI Updates - Get air quality reports every morning
• Health Precautions - Important safety recommendations
• Emergency Alerts - Immediate notifications for critical conditions

📱 Stay informed, stay safe! 🌱
Visit jandrishti.in to manage your subscription`, scope)

	return EmailPayload{Subject: subject, HTML: html, Text: text}
}
