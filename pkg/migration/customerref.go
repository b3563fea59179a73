// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package migration

import (
	"regexp"

	"github.com/walteh/fixup/pkg/rewrite"
)

// CustomerFirestoreID is the name of the built-in migration that renames the
// numeric customerId reference of the project manager modal to the string
// customerFirestoreId reference.
const CustomerFirestoreID = "customer-firestore-id"

// ProjectManagerModalPath is the file the built-in migration rewrites.
const ProjectManagerModalPath = "src/components/ProjectManagerModal.tsx"

func init() {
	if err := Register(NewCustomerFirestoreID()); err != nil {
		panic(err)
	}
}

// NewCustomerFirestoreID builds the built-in customer reference migration.
//
// The submit handler fragment contains the bare reset-form call site, so the
// submit handler is rewritten before the reset-form transformation runs.
// Otherwise the global reset-form replacement would rewrite the call site
// inside the handler first and the handler pattern would never match.
func NewCustomerFirestoreID() *Migration {
	return &Migration{
		Name:        CustomerFirestoreID,
		Description: "rename numeric customerId references to string customerFirestoreId",
		Target:      ProjectManagerModalPath,
		Transformations: []rewrite.Transformation{
			{
				Name:           "state-declaration",
				Pattern:        regexp.MustCompile(oldStateDecl),
				Replacement:    newStateDecl,
				FileFilterGlob: "**/*.tsx",
			},
			{
				Name:           "edit-handler",
				Pattern:        regexp.MustCompile(oldEditHandler),
				Replacement:    newEditHandler,
				FileFilterGlob: "**/*.tsx",
			},
			{
				Name:           "submit-handler",
				Pattern:        regexp.MustCompile(oldSubmitHandler),
				Replacement:    newSubmitHandler,
				FileFilterGlob: "**/*.tsx",
			},
			{
				Name:           "reset-form",
				Pattern:        regexp.MustCompile(oldResetForm),
				Replacement:    newResetForm,
				FileFilterGlob: "**/*.tsx",
			},
			{
				Name:           "customer-select",
				Pattern:        regexp.MustCompile(oldCustomerSelect),
				Replacement:    newCustomerSelect,
				FileFilterGlob: "**/*.tsx",
			},
			{
				Name:           "project-item",
				Pattern:        regexp.MustCompile(oldProjectItem),
				Replacement:    newProjectItem,
				FileFilterGlob: "**/*.tsx",
			},
		},
	}
}

// The fragment patterns below match the component source verbatim, with
// regexp metacharacters escaped. Replacements are inserted literally.
const (
	oldStateDecl = `const \[formData, setFormData\] = useState\({ name: '', color: COLORS\[0\], customerId: undefined as number \| undefined }\)`

	newStateDecl = `const [formData, setFormData] = useState({ name: '', color: COLORS[0], customerFirestoreId: undefined as string | undefined })`

	oldResetForm = `setFormData\({ name: '', color: COLORS\[0\], customerId: undefined }\)`

	newResetForm = `setFormData({ name: '', color: COLORS[0], customerFirestoreId: undefined })`

	oldEditHandler = `setFormData\({ name: project\.name, color: project\.color, customerId: project\.customerId }\)`

	newEditHandler = `setFormData({ name: project.name, color: project.color, customerFirestoreId: project.customerFirestoreId })`

	oldSubmitHandler = `    try {
      if \(editingProject\) {
        await updateProject\(editingProject\.id!, {
          name: formData\.name\.trim\(\),
          color: formData\.color,
          customerId: formData\.customerId
        }\)
        showToast\('Project updated', 'success'\)
      } else {
        await createProject\({
          name: formData\.name\.trim\(\),
          color: formData\.color,
          customerId: formData\.customerId,
          archived: false
        }\)
        showToast\('Project created', 'success'\)
      }

      setEditingProject\(null\)
      setIsCreating\(false\)
      setFormData\({ name: '', color: COLORS\[0\], customerId: undefined }\)
    } catch \(error\) {
      showToast\('Failed to save project', 'error'\)
    }`

	newSubmitHandler = `    try {
      // Find the customer's local ID for backward compatibility
      const customer = formData.customerFirestoreId 
        ? customers.find(c => c.firestoreId === formData.customerFirestoreId)
        : undefined;

      if (editingProject) {
        await updateProject(editingProject.id!, {
          name: formData.name.trim(),
          color: formData.color,
          customerId: customer?.id,
          customerFirestoreId: formData.customerFirestoreId
        })
        showToast('Project updated', 'success')
      } else {
        await createProject({
          name: formData.name.trim(),
          color: formData.color,
          customerId: customer?.id,
          customerFirestoreId: formData.customerFirestoreId,
          archived: false
        })
        showToast('Project created', 'success')
      }

      setEditingProject(null)
      setIsCreating(false)
      setFormData({ name: '', color: COLORS[0], customerFirestoreId: undefined })
    } catch (error) {
      showToast('Failed to save project', 'error')
    }`

	oldCustomerSelect = `                <select
                  value={formData\.customerId \|\| ''}
                  onChange={\(e\) => setFormData\({ \.\.\.formData, customerId: e\.target\.value \? Number\(e\.target\.value\) : undefined }\)}
                  className="w-full border border-gray-300 dark:border-gray-600 dark:bg-gray-800 dark:text-white rounded-md px-3 py-2 focus:outline-none focus:ring-2 focus:ring-blue-500"
                >
                  <option value="">No customer</option>
                  {customers\.filter\(c => !c\.archived\)\.map\(\(customer\) => \(
                    <option key={customer\.id} value={customer\.id}>
                      {customer\.companyName}
                    </option>
                  \)\)}
                </select>`

	newCustomerSelect = `                <select
                  value={formData.customerFirestoreId || ''}
                  onChange={(e) => setFormData({ ...formData, customerFirestoreId: e.target.value || undefined })}
                  className="w-full border border-gray-300 dark:border-gray-600 dark:bg-gray-800 dark:text-white rounded-md px-3 py-2 focus:outline-none focus:ring-2 focus:ring-blue-500"
                >
                  <option value="">No customer</option>
                  {customers.filter(c => !c.archived).map((customer) => (
                    <option key={customer.id} value={customer.firestoreId}>
                      {customer.companyName}
                    </option>
                  ))}
                </select>`

	oldProjectItem = `function ProjectItem\({ project, onEdit, onDelete, onArchive }: ProjectItemProps\) {
  return \(
    <div className={` + "`" + `
      flex items-center justify-between p-3 border border-gray-200 dark:border-gray-700 rounded-lg
      \$\{project\.archived \? 'bg-gray-50 dark:bg-gray-700 opacity-75' : 'bg-white dark:bg-gray-800 hover:bg-gray-50 dark:hover:bg-gray-700'\}
    ` + "`" + `}>
      <div className="flex items-center">
        <div
          className="w-4 h-4 rounded-full mr-3 flex-shrink-0"
          style=\{\{ backgroundColor: project\.color \}\}
        />
        <span className={` + "`" + `font-medium \$\{project\.archived \? 'text-gray-500 dark:text-gray-400' : 'text-gray-900 dark:text-white'\}` + "`" + `}>
          \{project\.name\}
        </span>
        \{project\.archived && \(
          <span className="ml-2 px-2 py-1 bg-gray-200 dark:bg-gray-600 text-gray-600 dark:text-gray-300 text-xs rounded-full">
            Archived
          </span>
        \)\}
      </div>`

	newProjectItem = `function ProjectItem({ project, onEdit, onDelete, onArchive }: ProjectItemProps) {
  const { customers } = useCustomersStore();
  const customer = project.customerFirestoreId 
    ? customers.find(c => c.firestoreId === project.customerFirestoreId)
    : undefined;

  return (
    <div className={` + "`" + `
      flex items-center justify-between p-3 border border-gray-200 dark:border-gray-700 rounded-lg
      ${project.archived ? 'bg-gray-50 dark:bg-gray-700 opacity-75' : 'bg-white dark:bg-gray-800 hover:bg-gray-50 dark:hover:bg-gray-700'}
    ` + "`" + `}>
      <div className="flex items-center">
        <div
          className="w-4 h-4 rounded-full mr-3 flex-shrink-0"
          style={{ backgroundColor: project.color }}
        />
        <div className="flex flex-col">
          <span className={` + "`" + `font-medium ${project.archived ? 'text-gray-500 dark:text-gray-400' : 'text-gray-900 dark:text-white'}` + "`" + `}>
            {project.name}
          </span>
          {customer && (
            <span className="text-xs text-gray-500 dark:text-gray-400">
              {customer.companyName}
            </span>
          )}
        </div>
        {project.archived && (
          <span className="ml-2 px-2 py-1 bg-gray-200 dark:bg-gray-600 text-gray-600 dark:text-gray-300 text-xs rounded-full">
            Archived
          </span>
        )}
      </div>`
)
