package checklist

// defaultItems is the built-in audit checklist.
var defaultItems = []Item{
	{
		Subject:  "Project Initiation",
		Question: "Is the Signed SOW and MSA available also verify the change orders if any?",
		Keywords: []string{"sow", "msa", "checklist"},
		Weight:   3,
		Tags:     []Framework{FrameworkPCI, FrameworkGDPR, FrameworkCMMI, FrameworkITSM},
	},
	{
		Subject:  "Inception and Discovery",
		Question: "Is the High Level Architecture understood and documented?",
		Keywords: []string{"high level design", "hld", "architecture"},
		Weight:   2,
		Tags:     []Framework{FrameworkPCI, FrameworkCMMI},
	},
	{
		Subject:  "Inception and Discovery",
		Question: "Is there a high level release plan available including high level Estimates?",
		Keywords: []string{"agile estimation", "release planning", "estimates"},
		Weight:   1,
		Tags:     []Framework{FrameworkPCI, FrameworkCMMI},
	},
	{
		Subject:  "Inception and Discovery",
		Question: "Are the non-functional requirements identified?",
		Keywords: []string{"jira", "product backlog", "user stories", "nfr"},
		Weight:   3,
		Tags:     []Framework{FrameworkPCI, FrameworkCMMI},
	},
	{
		Subject:  "Inception and Discovery",
		Question: "Is the Project process (with required tailoring) that need to be followed are identified?",
		Keywords: []string{"pmp", "project management plan"},
		Weight:   2,
		Tags:     []Framework{FrameworkPCI, FrameworkCMMI},
	},
	{
		Subject:  "Sprint 0",
		Question: "Is the Project Management Plan and Quality Plan defined for this project?",
		Keywords: []string{"pmp", "project management plan", "gdq-qa", "quality plan"},
		Weight:   1,
		Tags:     []Framework{FrameworkPCI, FrameworkGDPR, FrameworkCMMI, FrameworkITSM},
	},
	{
		Subject:  "Sprint 0",
		Question: "Is the change management planning, customer supplied assets, NDA and Information Security related aspects defined?",
		Keywords: []string{"project management process", "change management", "nda"},
		Weight:   3,
		Tags:     []Framework{FrameworkPCI, FrameworkGDPR, FrameworkCMMI, FrameworkITSM},
	},
	{
		Subject:  "Sprint 0",
		Question: "Does the PMP have Risk Management and Issue Resolution plans?",
		Keywords: []string{"risk register", "pmp", "project management plan"},
		Weight:   2,
		Tags:     []Framework{FrameworkPCI, FrameworkGDPR, FrameworkCMMI, FrameworkITSM},
	},
	{
		Subject:  "Sprint 0",
		Question: "Does the Quality Plan have the 1. Audits and Review plan defined 2. Measurement plan / agile metrics goals defined 3. Phase Gates planned (PG7 [Design Completion Review], PG8 [Production/Go-Live Readiness] and PG9[Project Closure])",
		Keywords: []string{"gdq-qa", "plan", "phase gate", "pg7", "pg8", "pg9", "score card"},
		Weight:   1,
		Tags:     []Framework{FrameworkPCI, FrameworkCMMI, FrameworkITSM},
	},
	{
		Subject:  "Sprint 0",
		Question: "Is the PMP (Project Management Plan) reviewed and approved by the Service Line Manager and QA team?",
		Keywords: []string{"pmp", "project management plan"},
		Weight:   3,
		Tags:     []Framework{FrameworkPCI, FrameworkGDPR, FrameworkCMMI, FrameworkITSM},
	},
	{
		Subject:  "Sprint 0",
		Question: "Is Definition of Done define?",
		Keywords: []string{"definition of done", "dod"},
		Weight:   2,
		Tags:     []Framework{FrameworkPCI, FrameworkCMMI},
	},
	{
		Subject:  "Sprint 0",
		Question: "Did team start developing the user stories? Are the user stories elaborate, clear to estimate?",
		Keywords: []string{"user stories", "design", "develop"},
		Weight:   1,
		Tags:     []Framework{FrameworkPCI, FrameworkCMMI},
	},
	{
		Subject:  "Sprint 0",
		Question: "Is the acceptance criteria defined for User stories?",
		Keywords: []string{"user stories", "acceptance criteria"},
		Weight:   3,
		Tags:     []Framework{FrameworkPCI, FrameworkCMMI},
	},
	{
		Subject:  "Sprint 0",
		Question: "Are user stories and acceptance criteria reviewed and approved by product owner?",
		Keywords: []string{"user stories", "acceptance criteria", "jira"},
		Weight:   2,
		Tags:     []Framework{FrameworkPCI, FrameworkCMMI},
	},
	{
		Subject:  "Sprint 0",
		Question: "Are the Product owner, Scrum master and Scrum team identified for the project?",
		Keywords: []string{"working agreement", "roles", "responsibilities"},
		Weight:   1,
		Tags:     []Framework{FrameworkPCI, FrameworkCMMI},
	},
	{
		Subject:  "Sprint Planning",
		Question: "Did the team estimate for user stories, in terms of story points and efforts? Did the team estimate to granular level?",
		Keywords: []string{"agile estimation", "release planning", "story points"},
		Weight:   3,
		Tags:     []Framework{FrameworkPCI, FrameworkCMMI},
	},
	{
		Subject:  "Sprint Planning",
		Question: "Was the entire team involved in estimation activities, including Product owner, Scrum master and Scrum Team?",
		Keywords: []string{"agile estimation", "sprint planning"},
		Weight:   2,
		Tags:     []Framework{FrameworkPCI, FrameworkCMMI},
	},
	{
		Subject:  "Sprint Planning",
		Question: "Are the user stories Reviewed and approved by Product owner?",
		Keywords: []string{"sprint backlog", "burndown", "user stories"},
		Weight:   1,
		Tags:     []Framework{FrameworkPCI, FrameworkGDPR, FrameworkCMMI},
	},
	{
		Subject:  "Sprint Execution",
		Question: "Did the team prepare low level design for all the functional user stories?",
		Keywords: []string{"detail design", "lld"},
		Weight:   3,
		Tags:     []Framework{FrameworkPCI, FrameworkCMMI},
	},
	{
		Subject:  "Sprint Execution",
		Question: "Is LLD reviewed and approved by SME/ Product owner",
		Keywords: []string{"tca.020", "technical architecture", "high level design"},
		Weight:   2,
		Tags:     []Framework{FrameworkPCI, FrameworkCMMI},
	},
	{
		Subject:  "Sprint Execution",
		Question: "Did team perform unit testing of the developed code?",
		Keywords: []string{"unit test plan"},
		Weight:   1,
		Tags:     []Framework{FrameworkPCI, FrameworkCMMI},
	},
	{
		Subject:  "Sprint Execution",
		Question: "Did product owner reviewed and approved the Test cases?",
		Keywords: []string{"unit test plan", "test cases"},
		Weight:   3,
		Tags:     []Framework{FrameworkPCI, FrameworkCMMI},
	},
	{
		Subject:  "Sprint Execution",
		Question: "Is daily standup meeting planned and conducted?",
		Keywords: []string{"daily standup", "meeting template"},
		Weight:   2,
		Tags:     []Framework{FrameworkPCI, FrameworkCMMI},
	},
	{
		Subject:  "Sprint Execution",
		Question: "Are the relevant stakeholders, Product owner, Scrum master and team part of the standup meeting?",
		Keywords: []string{"daily standup", "impediments list"},
		Weight:   1,
		Tags:     []Framework{FrameworkPCI, FrameworkCMMI},
	},
	{
		Subject:  "Sprint Execution",
		Question: "Are the CI & Non CI needs identified and implemented?",
		Keywords: []string{"pmp", "project management plan", "ci"},
		Weight:   3,
		Tags:     []Framework{FrameworkPCI, FrameworkCMMI},
	},
	{
		Subject:  "Project Status Reporting/ PG6",
		Question: "Is project status reviewed with senior management at appropriate intervals? a. Overall status b. Project performance (achievements & milestones) c. Open issues d. Risks e. Action items f. Cost & time performance against plan g. Quality metrics i. Team member's skill assessment report j. IQA and CQA results",
		Keywords: []string{"risk register", "rail", "rolling action", "phase gate 6", "hi-dash"},
		Weight:   2,
		Tags:     []Framework{FrameworkPCI, FrameworkCMMI},
	},
	{
		Subject:  "Qualitative Assurance",
		Question: "Are the metrics captured and reported for each Sprint?",
		Keywords: []string{"agile metrics", "evm", "hi-dash"},
		Weight:   1,
		Tags:     []Framework{FrameworkPCI, FrameworkCMMI},
	},
	{
		Subject:  "Risk Management",
		Question: "Are all risks identified and documented?",
		Keywords: []string{"risk register", "rail", "phase gate 6"},
		Weight:   3,
		Tags:     []Framework{FrameworkPCI, FrameworkCMMI},
	},
	{
		Subject:  "Risk Management",
		Question: "Are Mitigation and Contingency Plans in place?",
		Keywords: []string{"risk register", "mitigation", "contingency"},
		Weight:   2,
		Tags:     []Framework{FrameworkPCI, FrameworkCMMI},
	},
	{
		Subject:  "Risk Management",
		Question: "Are risks reviewed and updated periodically.?",
		Keywords: []string{"risk register"},
		Weight:   1,
		Tags:     []Framework{FrameworkPCI, FrameworkCMMI},
	},
	{
		Subject:  "Risk Management",
		Question: "Are Mitigation plans effective. If risks had occurred, look for the implementation of contingency plan for critical risks and impact assessment ?",
		Keywords: []string{"risk register", "mitigation", "contingency"},
		Weight:   3,
		Tags:     []Framework{FrameworkPCI, FrameworkCMMI},
	},
	{
		Subject:  "Customer Complaints & CSS",
		Question: "Is the Progress on action plan tracked periodically and the associated risk also updated?",
		Keywords: []string{"project status report", "hi-dash"},
		Weight:   2,
		Tags:     []Framework{FrameworkPCI, FrameworkCMMI},
	},
	{
		Subject:  "Customer Complaints & CSS",
		Question: "Has there been a CSS initiated for the project in the last 6 months?",
		Keywords: []string{"css", "email communication"},
		Weight:   1,
		Tags:     []Framework{FrameworkPCI, FrameworkCMMI},
	},
	{
		Subject:  "Phase Gate and Code Quality Compliance",
		Question: "Are Code Quality Audits planned and conducted for this project as per frequency defined in PMP?",
		Keywords: []string{"pmp", "code quality", "cqa", "checklist", "rail", "irf tool"},
		Weight:   3,
		Tags:     []Framework{FrameworkPCI, FrameworkCMMI},
	},
	{
		Subject:  "Phase Gate and Code Quality Compliance",
		Question: "Has the PG7 (Design Completion Review) been conducted as planned and action items tracked to closure",
		Keywords: []string{"phase gate 7", "pg7", "rail"},
		Weight:   2,
		Tags:     []Framework{FrameworkPCI, FrameworkCMMI},
	},
	{
		Subject:  "Phase Gate and Code Quality Compliance",
		Question: "Has the PG8 (Production/ Go-Live Readiness) been conducted as planned and action items tracked to closure",
		Keywords: []string{"scorecard", "pg8", "hi-dash"},
		Weight:   1,
		Tags:     []Framework{FrameworkPCI, FrameworkCMMI},
	},
	{
		Subject:  "Phase Gate and Code Quality Compliance",
		Question: "Has the PG9 (Project Closure) been conducted as planned and lessons learned/ key success factors documented",
		Keywords: []string{"pg9", "project closure", "report"},
		Weight:   3,
		Tags:     []Framework{FrameworkPCI, FrameworkCMMI, FrameworkITSM},
	},
	{
		Subject:  "Information Security (Bare Minimum Checks)",
		Question: "Are Information Security related needs, client expectations, requirements identified in Project Management Plan?",
		Keywords: []string{"pmp", "project management plan", "information security"},
		Weight:   2,
		Tags:     []Framework{FrameworkPCI, FrameworkGDPR, FrameworkInfosec},
	},
	{
		Subject:  "Information Security",
		Question: "Is Project Team aware of Information Security related policies like Clean/Clear Desk, Password Management etc.? Did they attend ISMS Training Sessions Conducted by Infosec team?",
		Keywords: []string{"global information security policy"},
		Weight:   1,
		Tags:     []Framework{FrameworkPCI, FrameworkGDPR, FrameworkInfosec},
	},
	{
		Subject:  "Information Security (Bare Minimum Checks)",
		Question: "Are Information Security Risks identified and monitored to closure with Proper Mitigation Plans as per CIA?",
		Keywords: []string{"risk register", "information security"},
		Weight:   3,
		Tags:     []Framework{FrameworkPCI, FrameworkGDPR, FrameworkInfosec},
	},
	{
		Subject:  "Information Security (Bare Minimum Checks)",
		Question: "Are Information Security Audits conducted as per defined frequency in PMP ( As Applicable)?",
		Keywords: []string{"pmp", "project management plan", "information security audit"},
		Weight:   2,
		Tags:     []Framework{FrameworkPCI, FrameworkGDPR, FrameworkInfosec},
	},
	{
		Subject:  "Information Security (Bare Minimum Checks)",
		Question: "Is the project's purpose and setup clearly documented in the README.md file?",
		Keywords: []string{"README.md"},
		Weight:   2,
		Tags:     []Framework{FrameworkPCI, FrameworkInfosec, FrameworkGitHub},
		Source:   SourceCodeRepository,
	},
	{
		Subject:  "Information Security (Bare Minimum Checks)",
		Question: "Does the database connection file contain any hardcoded passwords or secrets?",
		Keywords: []string{"config.py", "settings.py", "db.py"},
		Weight:   3,
		Tags:     []Framework{FrameworkPCI, FrameworkInfosec, FrameworkGitHub},
		Source:   SourceCodeRepository,
	},
}

// DefaultCatalog returns the built-in checklist as a fresh catalog.
func DefaultCatalog() *Catalog {
	c, err := NewCatalog(defaultItems)
	if err != nil {
		panic("checklist: invalid built-in catalog: " + err.Error())
	}
	return c
}
