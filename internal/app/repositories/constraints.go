package repositories

// Constraint names declared in migrations/001_init.sql. The memory store reports
// violations under the same names.
const (
	ConstraintUserUsername       = "users_username_key"
	ConstraintUserEmail          = "users_email_key"
	ConstraintRoleName           = "roles_name_key"
	ConstraintDepartmentName     = "departments_name_key"
	ConstraintCourseCode         = "courses_code_key"
	ConstraintFacultyUser        = "faculty_profiles_user_id_key"
	ConstraintEnrollmentPK       = "student_enrollments_pkey"
	ConstraintCourseFacultyPK    = "course_faculty_pkey"
	ConstraintCourseDepartmentFK = "courses_department_id_fkey"
	ConstraintFacultyDepartment  = "faculty_profiles_department_id_fkey"
	ConstraintFacultyUserFK      = "faculty_profiles_user_id_fkey"
	ConstraintPublicationFaculty = "publications_faculty_id_fkey"
	ConstraintEnrollmentStudent  = "student_enrollments_student_id_fkey"
	ConstraintEnrollmentCourse   = "student_enrollments_course_id_fkey"
	ConstraintAssignmentCourse   = "course_faculty_course_id_fkey"
	ConstraintAssignmentFaculty  = "course_faculty_faculty_id_fkey"
)

// UniqueFields maps unique constraints to the API field they protect
var UniqueFields = map[string]string{
	ConstraintUserUsername:    "username",
	ConstraintUserEmail:       "email",
	ConstraintRoleName:        "name",
	ConstraintDepartmentName:  "name",
	ConstraintCourseCode:      "code",
	ConstraintFacultyUser:     "userId",
	ConstraintEnrollmentPK:    "enrollment",
	ConstraintCourseFacultyPK: "assignment",
}

// ReferenceKinds maps foreign key constraints to the kind of entity they reference
var ReferenceKinds = map[string]string{
	ConstraintCourseDepartmentFK: "Department",
	ConstraintFacultyDepartment:  "Department",
	ConstraintFacultyUserFK:      "User",
	ConstraintPublicationFaculty: "Faculty",
	ConstraintEnrollmentStudent:  "User",
	ConstraintEnrollmentCourse:   "Course",
	ConstraintAssignmentCourse:   "Course",
	ConstraintAssignmentFaculty:  "Faculty",
}
