package services

import (
	"calltracker/internal/models"
	"calltracker/internal/structures"
	"fmt"
	"html/template"
	"io"
	"net/url"
	"strings"
)

const whatsAppURL = "https://wa.me/?text="

// Slip is a printable voter slip.
type Slip struct {
	Voter        models.VoterRecord  `json:"voter"`
	Meta         models.SlipMetadata `json:"meta"`
	Candidate    string              `json:"candidate"`
	Designation  string              `json:"designation,omitempty"`
	BallotNumber string              `json:"ballotNumber"`
	Election     string              `json:"election"`
	ShareText    string              `json:"shareText"`
	ShareURL     string              `json:"shareUrl"`
}

type SlipServiceInterface interface {
	Slip(voter models.VoterRecord) Slip
	RenderHTML(w io.Writer, slip Slip) error
}

type SlipService struct {
	conf structures.SlipConfig
	tmpl *template.Template
}

func NewSlipService(conf *structures.Config) *SlipService {
	return &SlipService{
		conf: conf.Slip,
		tmpl: template.Must(template.New("slip").Funcs(template.FuncMap{"na": orNA}).Parse(slipTemplate)),
	}
}

func (ss *SlipService) Slip(voter models.VoterRecord) Slip {
	s := Slip{
		Voter:        voter,
		Meta:         voter.Slip(),
		Candidate:    ss.conf.Candidate,
		Designation:  ss.conf.Designation,
		BallotNumber: ss.conf.BallotNumber,
		Election:     ss.conf.Election,
	}
	s.ShareText = ss.shareText(s)
	s.ShareURL = whatsAppURL + strings.ReplaceAll(url.QueryEscape(s.ShareText), "+", "%20")
	return s
}

func (ss *SlipService) shareText(s Slip) string {
	var b strings.Builder
	fmt.Fprintf(&b, "*%s - Voter Slip*\n\n", s.Election)
	fmt.Fprintf(&b, "Name: %s\n", s.Voter.FullName)
	fmt.Fprintf(&b, "Registration: %s\n", orNA(s.Meta.Registration))
	fmt.Fprintf(&b, "Contact: %s\n\n", orNA(s.Voter.Contact))
	fmt.Fprintf(&b, "*Vote for: %s*\n", s.Candidate)
	fmt.Fprintf(&b, "*Ballot No. %s*", s.BallotNumber)
	if ss.conf.ShareURL != "" {
		fmt.Fprintf(&b, "\n\nGet your voter slip: %s", ss.conf.ShareURL)
	}
	return b.String()
}

func (ss *SlipService) RenderHTML(w io.Writer, slip Slip) error {
	return ss.tmpl.Execute(w, slip)
}

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return "N/A"
	}
	return s
}

const slipTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<title>Voter Slip - {{.Voter.FullName}}</title>
<style>
body { font-family: Arial, sans-serif; padding: 20px; background: #f5f5f5; }
.slip { max-width: 550px; margin: 0 auto; background: #fff; border: 2px solid #e5e7eb; border-radius: 8px; overflow: hidden; }
.top { display: flex; border-bottom: 2px solid #e5e7eb; background: #f8fafc; }
.serial { width: 50px; padding: 12px; font-weight: 700; color: #dc2626; text-align: center; }
.name { flex: 1; padding: 12px 16px; font-weight: 700; }
.registration { padding: 12px 16px; font-weight: 600; color: #2563eb; background: #eff6ff; }
.main { display: flex; min-height: 120px; }
.qr img { width: 85px; height: 85px; }
.info { flex: 1; padding: 12px 16px; }
.photo img { width: 71px; height: 89px; object-fit: cover; }
.appeal { background: #1e40af; color: #fff; padding: 12px 16px; text-align: center; }
.appeal strong { color: #fbbf24; }
@media print { body { padding: 0; background: #fff; } }
</style>
</head>
<body>
<div class="slip">
  <div class="top">
    <div class="serial">{{if .Meta.Serial}}{{.Meta.Serial}}{{else}}-{{end}}</div>
    <div class="name">{{.Voter.FullName}}</div>
    <div class="registration">{{na .Meta.Registration}}</div>
  </div>
  <div class="main">
    <div class="qr">{{if .Voter.QRCodeURL}}<img src="{{.Voter.QRCodeURL}}" alt="QR">{{end}}</div>
    <div class="info">
      <p><strong>Contact:</strong> {{na .Voter.Contact}}</p>
      <p><strong>Address:</strong> {{na .Voter.Address}}</p>
    </div>
    <div class="photo">{{if .Voter.PhotoURL}}<img src="{{.Voter.PhotoURL}}" alt="Photo">{{end}}</div>
  </div>
  <div class="appeal">
    <p>Vote for: <strong>{{.Candidate}}</strong> - Ballot No. <strong>{{.BallotNumber}}</strong></p>
  </div>
</div>
</body>
</html>
`
