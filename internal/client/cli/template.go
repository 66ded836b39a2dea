package cli

const patientTemplate = `
=== {{.Name}} ===

ID:            {{.ID}}
Status:        {{.Status}}
Date of birth: {{.DateOfBirth}}{{if .Age}} (age {{.Age}}){{end}}
Last visit:    {{.LastVisit}}
{{- if .ReadyToDischarge }}
Ready to discharge
{{- end}}
Address:       {{.Address}}
Latest ISI:    {{.ISI}}
{{- if .Custom }}

Custom fields:
{{- range .Custom }}
  {{.Name}}{{if .Required}}*{{end}}: {{.Value}}
{{- end}}
{{- end}}
`

const statusTemplate = `
=== PatientDesk ===

API:            {{.APIBaseURL}}
Cache file:     {{.CachePath}}
Cache entries:  {{.Entries}}
{{- if .Newest }}
Last refreshed: {{.Newest}}
{{- end}}
Encryption:     {{if .Encrypted}}enabled{{else}}disabled{{end}}
Save debounce:  {{.Debounce}}
Filter delay:   {{.FilterDebounce}}
Stale after:    {{.StaleTime}}
`
