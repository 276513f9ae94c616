package mail

// defaultTemplates are the built-in lifecycle emails, used unless an
// on-disk template with the same name overrides them.
var defaultTemplates = map[string]string{
	"email_verification": `<p>Hello,</p>
<p>Thanks for signing up for {{.AppName}}. Click the button below to verify your email address. This link will expire in {{.ExpiryDuration}}.</p>
<p><a href="{{.VerificationURL}}" style="display:inline-block;padding:10px 16px;background:#1a73e8;color:#fff;border-radius:6px;text-decoration:none">Verify email</a></p>
<p>If you didn't create an account, you can ignore this email.</p>
<p>&mdash; {{.AppName}}</p>`,

	"password_reset": `<p>Hello,</p>
<p>We received a request to reset the password for your account. Click the button below to set a new password. This link will expire in {{.ExpiryDuration}}.</p>
<p><a href="{{.ResetURL}}" style="display:inline-block;padding:10px 16px;background:#1a73e8;color:#fff;border-radius:6px;text-decoration:none">Reset password</a></p>
<p>If you didn't request this, you can ignore this email.</p>
<p>&mdash; {{.AppName}}</p>`,
}
