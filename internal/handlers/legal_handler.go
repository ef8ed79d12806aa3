package handlers

import (
	"github.com/gofiber/fiber/v2"
)

const legalStyle = `<style>body{font-family:-apple-system,BlinkMacSystemFont,sans-serif;max-width:800px;margin:0 auto;padding:20px;color:#333}h1{color:#1a1a1a}h2{color:#444;margin-top:30px}</style>`

type LegalHandler struct {
	appName      string
	contactEmail string
}

func NewLegalHandler(appName, contactEmail string) *LegalHandler {
	return &LegalHandler{appName: appName, contactEmail: contactEmail}
}

func (h *LegalHandler) PrivacyPolicy(c *fiber.Ctx) error {
	return c.Type("html").SendString(`<!DOCTYPE html>
<html><head><title>Privacy Policy - ` + h.appName + `</title>
<meta name="viewport" content="width=device-width, initial-scale=1">
` + legalStyle + `
</head><body>
<h1>Privacy Policy</h1>
<h2>Information We Collect</h2>
<p>We store your email address, the body information you enter on the information board (birthdate, gender, height, weight, activity level, sport and training frequency) and the weight goals you create.</p>
<h2>How We Use Your Information</h2>
<p>Your data is used only to display your profile and compute the progress of your goals in ` + h.appName + `.</p>
<h2>Data Storage</h2>
<p>We do not sell your personal information to third parties.</p>
<h2>Account Deletion</h2>
<p>Deleting your account removes your profile and every goal attached to it.</p>
<h2>Contact</h2>
<p>For questions about this policy, contact us at ` + h.contactEmail + `</p>
</body></html>`)
}

func (h *LegalHandler) TermsOfService(c *fiber.Ctx) error {
	return c.Type("html").SendString(`<!DOCTYPE html>
<html><head><title>Terms of Service - ` + h.appName + `</title>
<meta name="viewport" content="width=device-width, initial-scale=1">
` + legalStyle + `
</head><body>
<h1>Terms of Service</h1>
<h2>Acceptance</h2>
<p>By using ` + h.appName + `, you agree to these terms.</p>
<h2>Health Disclaimer</h2>
<p>Goal progress is computed from the dates and weights you enter. It is not medical advice; consult a professional before starting a weight-loss program.</p>
<h2>Your Account</h2>
<p>You are responsible for the security of your credentials and for the accuracy of the information you submit.</p>
<h2>Contact</h2>
<p>Questions about these terms can be sent to ` + h.contactEmail + `</p>
</body></html>`)
}
