package s3

import "testing"

func TestObjectURL(t *testing.T) {
	u := &Uploader{Bucket: "tusep-reports", Region: "eu-central-1"}
	if got := u.ObjectURL("reports/a.xlsx"); got != "https://tusep-reports.s3.eu-central-1.amazonaws.com/reports/a.xlsx" {
		t.Fatalf("s3 url = %q", got)
	}
	u.CloudFrontDomain = "cdn.example.org"
	if got := u.ObjectURL("reports/a.xlsx"); got != "https://cdn.example.org/reports/a.xlsx" {
		t.Fatalf("cloudfront url = %q", got)
	}
}
