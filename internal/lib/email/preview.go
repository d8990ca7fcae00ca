package email

// PreviewData holds sample data for each template, keyed by template name.
var PreviewData = map[Template]map[string]string{
	TemplateWelcome: {
		"UserFirstName": "Joe",
		"EmailAddress":  "joseph.howard307@gmail.com",
	},
}
