package cli

import "text/template"

var entityListTemplate = template.Must(template.New("entities").Parse(`=== {{ .Type }} ===
{{- if eq (len .Items) 0 }}
No {{ .Type }} found.

Use 'goalsync put {{ .Type }} --data <json>' to add one.
{{ else }}
Found {{ len .Items }} item(s):
{{ range .Items }}
- {{ .ID }}  v{{ .Version }}{{ if .Pending }}  (pending sync){{ end }}
   {{ printf "%s" .Data }}
{{- end }}
{{ end -}}
`))

var conflictsTemplate = template.Must(template.New("conflicts").Parse(`=== Pending Conflicts ===
{{- if eq (len .) 0 }}
No conflicts.
{{ else }}
Found {{ len . }} conflict(s):
{{ range . }}
- {{ .Type }}/{{ .ID }}
   Local:  {{ .LocalOperation }} based on v{{ .ClientVersion }}
   {{- if .LocalEntity.Data }}
   {{ printf "%s" .LocalEntity.Data }}
   {{- end }}
   Server: {{ if .ServerEntity }}v{{ .ServerVersion }}
   {{ printf "%s" .ServerEntity.Data }}{{ else }}deleted (v{{ .ServerVersion }}){{ end }}
{{- end }}

Sync is paused. Use 'goalsync resolve <id> --keep local|server' for each conflict.
{{ end -}}
`))

var statusTemplate = template.Must(template.New("status").Parse(`=== Status ===
{{- if .Session }}
Account:      {{ .Session.Username }}
Session:      {{ if .Expired }}expired, run 'goalsync login'{{ else }}valid until {{ .ExpiresAt }}{{ end }}
{{- else }}
Account:      not logged in
{{- end }}
Server:       {{ .Server }}{{ if .Reach }} ({{ .Reach }}){{ end }}
Device ID:    {{ .Sync.DeviceID }}
Last sync:    {{ .LastSync }}
Pending:      {{ .Sync.Pending }} change(s)
Conflicts:    {{ .Sync.Conflicts }}
{{- if .Sync.LastError }}
Last error:   {{ .Sync.LastError }} (attempt {{ .Sync.Retries }}/{{ .Sync.MaxRetries }})
{{- end }}
`))
