package server

import "fmt"

// displayServerInfo shows server configuration information
func (s *Server) displayServerInfo() {
	s.displayEndpoints()
	s.displayRequestLimitInfo()
	s.displayRateLimitInfo()
}

// displayEndpoints shows available API endpoints
func (s *Server) displayEndpoints() {
	fmt.Println("Available endpoints:")
	fmt.Println("  GET  /health                          - Health check")
	fmt.Println("  GET  /stats                           - Server statistics")
	fmt.Println("  POST /api/jobseeker/signup            - Job seeker registration")
	fmt.Println("  POST /api/jobseeker/signin            - Job seeker login")
	fmt.Println("  POST /api/recruiter/signup            - Recruiter registration")
	fmt.Println("  POST /api/recruiter/signin            - Recruiter login")
	fmt.Println("  POST /api/auth/signout                - Token revocation")
	fmt.Println("  GET  /api/jobs                        - List job listings")
	fmt.Println("  GET  /api/jobs/{id}                   - Job listing detail")
	fmt.Println("  POST /api/jobs                        - Create job listing (recruiter)")
	fmt.Println("  POST /api/jobs/{id}/close             - Close job listing (recruiter)")
	fmt.Println("  GET  /api/jobs/{id}/applications      - List applications (recruiter)")
	fmt.Println("  POST /api/jobs/{id}/analyze           - Resume match analysis")
	fmt.Println("  POST /api/jobs/{id}/apply             - Submit application")
	fmt.Println("  POST /api/resumes/extract             - Resume text extraction")
}

// displayRequestLimitInfo shows request size limit configuration
func (s *Server) displayRequestLimitInfo() {
	if s.MaxRequestSize > 0 {
		fmt.Printf("Request size limit: %d bytes (%.1f MB)\n", s.MaxRequestSize, float64(s.MaxRequestSize)/(1024*1024))
	} else {
		fmt.Println("Request size limit: DISABLED")
		fmt.Println("WARNING: No request size limits configured!")
	}
}

// displayRateLimitInfo shows rate limiting configuration
func (s *Server) displayRateLimitInfo() {
	if s.RateLimit != nil && s.RateLimit.Enabled {
		fmt.Printf("Rate limiting: ENABLED (%d requests/min, burst: %d)\n",
			s.RateLimit.RequestsPerMin, s.RateLimit.BurstCapacity)
		if s.RateLimit.ByAPIKey {
			fmt.Println("  - Per API key rate limiting enabled")
		}
		if s.RateLimit.ByIP {
			fmt.Println("  - Per IP address rate limiting enabled")
		}
	} else {
		fmt.Println("Rate limiting: DISABLED")
		fmt.Println("WARNING: No rate limiting configured!")
	}
}
