package session

var roleTitles = map[string]string{
	"admin":        "Senior Cyber Crime Officer",
	"analyst":      "Cyber Crime Analyst",
	"investigator": "Digital Forensics Investigator",
	"supervisor":   "Cyber Security Supervisor",
	"user":         "Cyber Crime Constable",
}

var roleDepartments = map[string]string{
	"admin":        "Cyber Crime Headquarters",
	"analyst":      "Intelligence & Analysis Division",
	"investigator": "Digital Forensics Unit",
	"supervisor":   "Cyber Security Operations",
	"user":         "Field Operations Unit",
}

var roleBios = map[string]string{
	"admin":        "Senior officer overseeing cyber crime operations and strategic threat analysis.",
	"analyst":      "Specialist in social media threat detection and misinformation analysis.",
	"investigator": "Expert in digital forensics and evidence collection for cyber crimes.",
	"supervisor":   "Supervising cyber security operations and coordinating threat response.",
	"user":         "Field officer specializing in cyber crime investigation and prevention.",
}

// JobTitleForRole maps a backend role to a display job title.
func JobTitleForRole(role string) string {
	if title, ok := roleTitles[role]; ok {
		return title
	}
	return "Cyber Crime Officer"
}

// DepartmentForRole maps a backend role to a display department.
func DepartmentForRole(role string) string {
	if dept, ok := roleDepartments[role]; ok {
		return dept
	}
	return "Cyber Security Division"
}

// BioForRole maps a backend role to a default profile bio.
func BioForRole(role string) string {
	if bio, ok := roleBios[role]; ok {
		return bio
	}
	return "Experienced cyber crime officer specializing in digital threat detection."
}
