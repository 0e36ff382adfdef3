package recommend

import "github.com/opsgrade/posture-engine/internal/models"

// SeedCatalog returns the embedded recommendation catalog, used when the
// external store yields nothing. Domain IDs match the default question
// catalog.
func SeedCatalog() []models.Recommendation {
	return []models.Recommendation{
		{
			ID:           "gov-policy",
			Title:        "Establish a Security Policy Framework",
			Description:  "Author and ratify a core policy set (acceptable use, access control, incident response) with executive sign-off and an annual review cycle.",
			Priority:     models.PriorityHigh,
			Domain:       "governance",
			Technologies: []string{"Policy management platform"},
			Effort:       "4-6 weeks",
		},
		{
			ID:           "gov-risk-register",
			Title:        "Stand Up a Risk Register",
			Description:  "Track security risks with owners, likelihood/impact ratings, and treatment decisions reviewed quarterly by management.",
			Priority:     models.PriorityMedium,
			Domain:       "governance",
			Technologies: []string{"GRC tooling"},
			Effort:       "2-4 weeks",
		},
		{
			ID:           "iam-mfa",
			Title:        "Enforce Multi-Factor Authentication Everywhere",
			Description:  "Roll out MFA to all user and administrative accounts, prioritizing email, VPN, and identity provider logins; block legacy protocols that bypass it.",
			Priority:     models.PriorityHigh,
			Domain:       "iam",
			Technologies: []string{"Microsoft Entra ID", "Okta", "Duo"},
			Effort:       "2-4 weeks",
		},
		{
			ID:           "iam-pam",
			Title:        "Introduce Privileged Access Management",
			Description:  "Separate admin accounts from daily-driver identities, vault shared credentials, and record privileged sessions.",
			Priority:     models.PriorityMedium,
			Domain:       "iam",
			Technologies: []string{"CyberArk", "HashiCorp Vault"},
			Effort:       "6-8 weeks",
		},
		{
			ID:           "iam-access-review",
			Title:        "Run Recurring Access Reviews",
			Description:  "Certify group memberships and application entitlements on a quarterly cadence with revocation on non-response.",
			Priority:     models.PriorityMedium,
			Domain:       "iam",
			Technologies: []string{"Identity governance tooling"},
			Effort:       "2-3 weeks",
		},
		{
			ID:           "net-segmentation",
			Title:        "Segment the Internal Network",
			Description:  "Split flat networks by function and sensitivity, starting with servers vs. user LANs and OT/IoT isolation; default-deny between zones.",
			Priority:     models.PriorityHigh,
			Domain:       "network",
			Technologies: []string{"Next-gen firewall", "VLAN/SDN"},
			Effort:       "8-12 weeks",
		},
		{
			ID:           "net-zt-remote",
			Title:        "Modernize Remote Access",
			Description:  "Replace shared-credential VPN access with per-user VPN or zero-trust network access gated by MFA and device posture.",
			Priority:     models.PriorityMedium,
			Domain:       "network",
			Technologies: []string{"ZTNA", "WireGuard"},
			Effort:       "4-6 weeks",
		},
		{
			ID:           "end-edr",
			Title:        "Deploy EDR to Every Endpoint",
			Description:  "Cover all workstations and servers with endpoint detection and response, with alerts routed to a monitored queue.",
			Priority:     models.PriorityHigh,
			Domain:       "endpoint",
			Technologies: []string{"CrowdStrike Falcon", "Microsoft Defender for Endpoint", "SentinelOne"},
			Effort:       "3-4 weeks",
		},
		{
			ID:           "end-patching",
			Title:        "Formalize Patch Management",
			Description:  "Define patch SLAs by severity, automate OS and third-party patching, and report compliance monthly.",
			Priority:     models.PriorityHigh,
			Domain:       "endpoint",
			Technologies: []string{"WSUS/Intune", "Patch management suite"},
			Effort:       "4-6 weeks",
		},
		{
			ID:           "data-backup",
			Title:        "Harden Backup and Recovery",
			Description:  "Adopt the 3-2-1 pattern with at least one immutable or offline copy, and restore-test business-critical systems quarterly.",
			Priority:     models.PriorityHigh,
			Domain:       "data",
			Technologies: []string{"Veeam", "Immutable object storage"},
			Effort:       "4-6 weeks",
		},
		{
			ID:           "data-encryption",
			Title:        "Close Encryption Gaps",
			Description:  "Encrypt sensitive data at rest (databases, file shares, laptops) and enforce TLS on all internal service traffic.",
			Priority:     models.PriorityMedium,
			Domain:       "data",
			Technologies: []string{"BitLocker", "TDE", "TLS everywhere"},
			Effort:       "4-8 weeks",
		},
		{
			ID:           "cld-posture",
			Title:        "Adopt Cloud Security Posture Management",
			Description:  "Continuously benchmark cloud accounts against CIS baselines, alert on public exposure, and wire findings into remediation workflow.",
			Priority:     models.PriorityHigh,
			Domain:       "cloud",
			Technologies: []string{"Wiz", "Prisma Cloud", "Defender for Cloud"},
			Effort:       "3-4 weeks",
		},
		{
			ID:           "cld-logging",
			Title:        "Centralize Cloud Audit Logging",
			Description:  "Enable and retain control-plane audit logs across all cloud accounts, shipped to the central log platform.",
			Priority:     models.PriorityMedium,
			Domain:       "cloud",
			Technologies: []string{"CloudTrail", "Azure Monitor"},
			Effort:       "2-3 weeks",
		},
		{
			ID:           "ops-siem",
			Title:        "Deploy Centralized Security Monitoring (SIEM)",
			Description:  "Aggregate logs from endpoints, servers, network gear, and cloud into a SIEM with tuned detections and a triage rota.",
			Priority:     models.PriorityMedium,
			Domain:       "ops",
			Technologies: []string{"Splunk", "Elastic Security", "Wazuh"},
			Effort:       "8-12 weeks",
		},
		{
			ID:           "ops-vuln-mgmt",
			Title:        "Operationalize Vulnerability Management",
			Description:  "Scan the full estate on a recurring schedule, rank findings by exploitability, and track remediation against SLAs.",
			Priority:     models.PriorityMedium,
			Domain:       "ops",
			Technologies: []string{"Tenable", "Qualys", "OpenVAS"},
			Effort:       "4-6 weeks",
		},
		{
			ID:           "ir-plan",
			Title:        "Write and Exercise an Incident Response Plan",
			Description:  "Document severity levels, roles, and escalation paths, then validate the plan with an annual tabletop exercise.",
			Priority:     models.PriorityHigh,
			Domain:       "incident",
			Technologies: []string{"IR playbook templates"},
			Effort:       "3-4 weeks",
		},
		{
			ID:           "awr-program",
			Title:        "Launch a Security Awareness Program",
			Description:  "Run annual role-based training plus quarterly phishing simulations with coaching for repeat clickers.",
			Priority:     models.PriorityMedium,
			Domain:       "awareness",
			Technologies: []string{"KnowBe4", "Proofpoint Security Awareness"},
			Effort:       "2-3 weeks",
		},
	}
}
