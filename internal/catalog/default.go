package catalog

import "github.com/opsgrade/posture-engine/internal/models"

// Default returns the embedded domain catalog. A weight of 2 or 3 marks a
// control whose absence is material on its own; weight 1 is hygiene.
func Default() *Catalog {
	return New(defaultDomains())
}

func defaultDomains() []models.Domain {
	return []models.Domain{
		{
			ID:          "governance",
			Name:        "Security Governance & Policy",
			Icon:        "shield-check",
			Description: "Leadership oversight, policy coverage, and risk ownership.",
			Questions: []models.Question{
				{ID: "gov-1", Prompt: "Is there a documented information security policy approved by leadership?", Category: "policy", Weight: 3},
				{ID: "gov-2", Prompt: "Is security risk reviewed at least quarterly at a management level?", Category: "risk", Weight: 2},
				{ID: "gov-3", Prompt: "Are security roles and responsibilities formally assigned?", Category: "roles", Weight: 2},
				{ID: "gov-4", Prompt: "Is there a maintained asset inventory covering hardware, software, and data?", Category: "assets", Weight: 2},
				{ID: "gov-5", Prompt: "Are third-party vendors assessed for security before onboarding?", Category: "vendors", Weight: 1},
			},
		},
		{
			ID:          "iam",
			Name:        "Identity & Access Management",
			Icon:        "key",
			Description: "Authentication strength, least privilege, and access lifecycle.",
			Questions: []models.Question{
				{ID: "iam-1", Prompt: "Is multi-factor authentication enforced for all user accounts?", Category: "authentication", Weight: 3},
				{ID: "iam-2", Prompt: "Are privileged accounts separated from day-to-day user accounts?", Category: "privileged-access", Weight: 3},
				{ID: "iam-3", Prompt: "Is access provisioned and revoked through a documented joiner/mover/leaver process?", Category: "lifecycle", Weight: 2},
				{ID: "iam-4", Prompt: "Are access rights reviewed on a recurring schedule?", Category: "review", Weight: 2},
				{ID: "iam-5", Prompt: "Is single sign-on in place for business-critical applications?", Category: "authentication", Weight: 2},
				{ID: "iam-6", Prompt: "Is a password manager provided and its use encouraged?", Category: "credentials", Weight: 1},
				{ID: "iam-7", Prompt: "Are service accounts inventoried with owners assigned?", Category: "service-accounts", Weight: 1},
				{ID: "iam-8", Prompt: "Are shared accounts prohibited or compensated with session accountability?", Category: "credentials", Weight: 1},
			},
		},
		{
			ID:          "network",
			Name:        "Network Security",
			Icon:        "globe",
			Description: "Perimeter controls, segmentation, and remote access.",
			Questions: []models.Question{
				{ID: "net-1", Prompt: "Are firewalls deployed at all network boundaries with a deny-by-default posture?", Category: "perimeter", Weight: 3},
				{ID: "net-2", Prompt: "Is the internal network segmented by function or sensitivity?", Category: "segmentation", Weight: 2},
				{ID: "net-3", Prompt: "Is remote access restricted to VPN or zero-trust access with MFA?", Category: "remote-access", Weight: 2},
				{ID: "net-4", Prompt: "Is guest or contractor traffic isolated from corporate networks?", Category: "segmentation", Weight: 1},
				{ID: "net-5", Prompt: "Are firewall and routing rules reviewed at least annually?", Category: "review", Weight: 1},
				{ID: "net-6", Prompt: "Is intrusion detection or prevention deployed on key segments?", Category: "monitoring", Weight: 2},
			},
		},
		{
			ID:          "endpoint",
			Name:        "Endpoint Protection",
			Icon:        "laptop",
			Description: "Device hardening, malware defense, and patch currency.",
			Questions: []models.Question{
				{ID: "end-1", Prompt: "Is endpoint detection and response (EDR) deployed on all workstations and servers?", Category: "edr", Weight: 3},
				{ID: "end-2", Prompt: "Are operating system patches applied within a defined SLA?", Category: "patching", Weight: 3},
				{ID: "end-3", Prompt: "Is full-disk encryption enforced on laptops and mobile devices?", Category: "encryption", Weight: 2},
				{ID: "end-4", Prompt: "Are endpoints centrally managed with enforced configuration baselines?", Category: "hardening", Weight: 2},
				{ID: "end-5", Prompt: "Is local administrator access removed from standard users?", Category: "hardening", Weight: 2},
				{ID: "end-6", Prompt: "Is application allow-listing or reputation-based blocking in use?", Category: "hardening", Weight: 1},
			},
		},
		{
			ID:          "data",
			Name:        "Data Protection",
			Icon:        "database",
			Description: "Classification, encryption, backup, and leakage controls.",
			Questions: []models.Question{
				{ID: "data-1", Prompt: "Is sensitive data classified and handled per a documented scheme?", Category: "classification", Weight: 2},
				{ID: "data-2", Prompt: "Is data encrypted at rest in databases and file stores?", Category: "encryption", Weight: 3},
				{ID: "data-3", Prompt: "Is data encrypted in transit across public and internal networks?", Category: "encryption", Weight: 2},
				{ID: "data-4", Prompt: "Are backups taken regularly, stored off-site or immutably, and restore-tested?", Category: "backup", Weight: 3},
				{ID: "data-5", Prompt: "Is data loss prevention tooling monitoring email and endpoint exfiltration paths?", Category: "dlp", Weight: 1},
				{ID: "data-6", Prompt: "Are data retention and secure disposal rules defined and followed?", Category: "retention", Weight: 1},
			},
		},
		{
			ID:          "cloud",
			Name:        "Cloud Security",
			Icon:        "cloud",
			Description: "Cloud account hygiene, workload posture, and IaC controls.",
			Questions: []models.Question{
				{ID: "cld-1", Prompt: "Are cloud root or global-admin accounts protected with MFA and break-glass procedures?", Category: "accounts", Weight: 3},
				{ID: "cld-2", Prompt: "Is cloud security posture management (CSPM) or equivalent benchmark scanning in place?", Category: "posture", Weight: 2},
				{ID: "cld-3", Prompt: "Are cloud audit logs enabled and retained centrally?", Category: "logging", Weight: 2},
				{ID: "cld-4", Prompt: "Is infrastructure defined as code with peer review before deployment?", Category: "iac", Weight: 1},
				{ID: "cld-5", Prompt: "Are public storage buckets and exposed services continuously detected?", Category: "exposure", Weight: 2},
				{ID: "cld-6", Prompt: "Are cloud workloads scanned for vulnerabilities and misconfigurations?", Category: "workloads", Weight: 1},
			},
		},
		{
			ID:          "ops",
			Name:        "Security Operations & Monitoring",
			Icon:        "activity",
			Description: "Log collection, detection, and vulnerability management.",
			Questions: []models.Question{
				{ID: "ops-1", Prompt: "Are security-relevant logs collected centrally from servers, endpoints, and network gear?", Category: "logging", Weight: 3},
				{ID: "ops-2", Prompt: "Is there 24/7 or business-hours alert triage with defined ownership?", Category: "detection", Weight: 2},
				{ID: "ops-3", Prompt: "Are vulnerability scans run on a recurring schedule with tracked remediation?", Category: "vulnerability", Weight: 2},
				{ID: "ops-4", Prompt: "Are detection rules tuned against current threats at least quarterly?", Category: "detection", Weight: 1},
				{ID: "ops-5", Prompt: "Is penetration testing performed at least annually?", Category: "testing", Weight: 1},
				{ID: "ops-6", Prompt: "Are threat intelligence feeds consumed to inform detection and patch priority?", Category: "intelligence", Weight: 1},
			},
		},
		{
			ID:          "incident",
			Name:        "Incident Response",
			Icon:        "siren",
			Description: "Preparedness, playbooks, and post-incident learning.",
			Questions: []models.Question{
				{ID: "ir-1", Prompt: "Is there a documented incident response plan with defined severity levels?", Category: "plan", Weight: 3},
				{ID: "ir-2", Prompt: "Are incident roles and an escalation path assigned, including out-of-hours contacts?", Category: "roles", Weight: 2},
				{ID: "ir-3", Prompt: "Are incident response exercises or tabletop tests run at least annually?", Category: "testing", Weight: 2},
				{ID: "ir-4", Prompt: "Are post-incident reviews held with tracked corrective actions?", Category: "learning", Weight: 1},
				{ID: "ir-5", Prompt: "Are legal, regulatory, and customer notification duties documented?", Category: "compliance", Weight: 1},
			},
		},
		{
			ID:          "awareness",
			Name:        "Security Awareness & Training",
			Icon:        "graduation-cap",
			Description: "Workforce training, phishing resilience, and culture.",
			Questions: []models.Question{
				{ID: "awr-1", Prompt: "Do all staff complete security awareness training at least annually?", Category: "training", Weight: 2},
				{ID: "awr-2", Prompt: "Are phishing simulations run with follow-up coaching?", Category: "phishing", Weight: 2},
				{ID: "awr-3", Prompt: "Do high-risk roles (finance, IT, executives) receive targeted training?", Category: "training", Weight: 1},
				{ID: "awr-4", Prompt: "Is there an easy, well-known channel for reporting suspicious activity?", Category: "reporting", Weight: 1},
			},
		},
	}
}
