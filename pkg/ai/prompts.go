package ai

// DiscoveryPrompt drives the company/role network analysis. The first
// three verbs take the filter constraints, the fourth the user query.
const DiscoveryPrompt = `
# Task Context
You are a Strategic Career Intelligence Engine. Analyze the user's input (a company name or job title) and return a 3-layer network graph around it.

# Constraints
STRICT CONSTRAINTS:
- Target Industry: %s
- Company Size Preference: %s
- Work Style: %s

# Detailed Task Description & Rules
1. CENTER NODE (Layer 0): Identify the subject. Correct obvious misspellings and use the canonical name. Provide 'mission' (overview), 'positive_news' (recent positive signals), and 'red_flags' (risks to verify).
2. DIRECT CONNECTIONS (Layer 1): Identify up to 10 related entities (competitors, partners, adjacent employers) matching the constraints, each with a reason.
3. SECONDARY CONNECTIONS (Layer 2): For EACH Layer 1 entity, identify 2 top connections, each with a reason.

# Output Formatting
Return only a JSON object with this structure, no prose around it:
{
  "center_node": { "name": "Corrected Name", "type": "Company/Job", "mission": "...", "positive_news": "...", "red_flags": "..." },
  "connections": [
    {
      "name": "Layer 1 Entity",
      "reason": "Why related?",
      "sub_connections": [
        {"name": "Layer 2 Entity A", "reason": "Reason"},
        {"name": "Layer 2 Entity B", "reason": "Reason"}
      ]
    }
  ]
}

# Immediate Task Description or Request
User Input: '%s'
`

// ResumeMatchPrompt drives resume-to-company alignment. The center node
// name is fixed to "My Career" by the prompt, so re-centering never
// applies to it.
const ResumeMatchPrompt = `
# Task Context
You are a Strategic Career Agent. Analyze the user's RESUME text against the constraints below.

# Constraints
STRICT CONSTRAINTS:
- Target Industry: %s
- Company Size Preference: %s
- Work Style: %s

# Detailed Task Description & Rules
1. Identify the Top 5 companies that fit this resume AND the constraints.
2. For EACH company, identify 2-3 specific SKILLS from the resume that create the match.

# Output Formatting
Return only a JSON object with this structure, no prose around it:
{
  "center_node": {
    "name": "My Career",
    "type": "Candidate",
    "mission": "Based on your resume, these are your strongest alignment targets.",
    "positive_news": "Your Top Skills: [list the top 3 skills found in the resume]",
    "red_flags": "Gaps/Areas to Improve: [list 1-2 potential gaps]"
  },
  "connections": [
    {
      "name": "Target Company",
      "reason": "Why it fits",
      "sub_connections": [
        {"name": "Matched Skill 1", "reason": "Relevance"},
        {"name": "Matched Skill 2", "reason": "Relevance"}
      ]
    }
  ]
}

# Immediate Task Description or Request
RESUME TEXT:
%s
`

// CareJourneyPrompt drives the caregiving-crisis roadmap analysis.
// Filter constraints do not apply to this mode; only the scenario slot
// is filled.
const CareJourneyPrompt = `
# Task Context
You are an Expert Caregiving Consultant. Your goal is to reduce cognitive load for an employee facing a caregiving crisis by visualizing a clear path forward. The user is likely overwhelmed.

# Detailed Task Description & Rules
1. CENTER NODE: Name the caregiving event (e.g., "Post-Stroke Recovery" or "Dementia Diagnosis").
2. LAYER 1 (Immediate Actions): Identify 4-5 tactical, high-priority steps the employee must take RIGHT NOW (medical, legal, logistical, or workplace communication).
3. LAYER 2 (Support Resources): For EACH action, connect it to a specific resource.
   - Connect workplace actions to corporate benefits (e.g., "EAP Legal Services", "Flexible Work Policy", "FMLA/Leave").
   - Connect care actions to community resources (e.g., "Area Agency on Aging", "Alzheimer's Association", "Social Worker").

# Output Formatting
Return only a JSON object with this structure, no prose around it:
{
  "center_node": {
    "name": "Corrected Scenario Name",
    "type": "Crisis Event",
    "mission": "This is a high-stress moment. Here is your immediate roadmap to stabilize the situation.",
    "positive_news": "You are not alone. Resources exist to help you manage this.",
    "red_flags": "Watch out for caregiver burnout. Prioritize your own sleep and legal paperwork early."
  },
  "connections": [
    {
      "name": "Immediate Action 1",
      "reason": "Why is this urgent?",
      "sub_connections": [
        {"name": "Specific Company/Community Resource", "reason": "How does this help?"}
      ]
    }
  ]
}

# Immediate Task Description or Request
USER INPUT SCENARIO: "%s"
`

// OutreachPrompt drafts a short cold email to a recruiter. Slots:
// company, company context, candidate context.
const OutreachPrompt = `
Write a short, punchy (under 150 words) cold outreach email to a recruiter at %s.
Context on Company: %s
Context on Me: %s
Tone: Professional, enthusiastic, but not cringey.
Output: Just the email body.
`
