package email

import "context"

// SendWelcomeEmail tells the owner of a newly stored address about it.
func (c *Client) SendWelcomeEmail(ctx context.Context, to, firstName string) error {
	data := map[string]string{
		"UserFirstName": firstName,
		"EmailAddress":  to,
	}

	return c.SendEmail(ctx, to, "Welcome to DockerPlayground!", TemplateWelcome, data)
}
